package dashboard

import (
	"fmt"
	"strings"
)

// GuidelinesUploadPath is the upload endpoint relative to the dashboard base path.
const GuidelinesUploadPath = "/guidelines"

func complianceSummaryWidget(meta WidgetContext, f *Fixtures) (WidgetData, error) {
	counts := f.ComplianceCounts()
	card := func(label string, n int, status ComplianceStatus, caption string) StatCard {
		t := status.Treatment()
		return StatCard{
			Label:      label,
			Value:      fmt.Sprintf("%d", n),
			ValueClass: t.TextClass,
			Caption:    caption,
			Treatment:  t,
		}
	}
	return WidgetData{
		"kind":  KindStatCards,
		"title": widgetTitle(meta, "Compliance Overview"),
		"cards": []StatCard{
			card("Policy Violations", counts.Failed, ComplianceFail, "Require immediate action"),
			card("Warnings", counts.Warnings, ComplianceWarning, "Approaching limits"),
			card("Compliant Rules", counts.Passed, CompliancePass, "Within limits"),
		},
		"counts": counts,
	}, nil
}

// BreachMessage is the alert text for n failing rules.
func BreachMessage(n int) string {
	return fmt.Sprintf("%d policy violation(s) require immediate attention.", n)
}

func breachAlertWidget(meta WidgetContext, f *Fixtures) (WidgetData, error) {
	failed := f.ComplianceCounts().Failed
	data := WidgetData{
		"kind":      KindAlert,
		"title":     widgetTitle(meta, "Critical Compliance Breach"),
		"visible":   failed > 0,
		"treatment": ComplianceFail.Treatment(),
	}
	if failed > 0 {
		data["message"] = BreachMessage(failed)
	}
	return data, nil
}

func guidelinesWidget(meta WidgetContext, f *Fixtures) (WidgetData, error) {
	accept := strings.Join(f.Compliance.AcceptedExtensions, ",")
	items := make([]ListItem, 0, len(f.Compliance.Guidelines)+1)
	if name := strings.TrimSpace(meta.State.Guidelines); name != "" {
		items = append(items, ListItem{
			Title:      name,
			Subtitle:   "Uploaded guidelines",
			Badge:      "Processed",
			BadgeClass: CompliancePass.Treatment().BadgeClass,
			Icon:       "file-text",
		})
	}
	for _, g := range f.Compliance.Guidelines {
		items = append(items, ListItem{
			Title:      g.Name,
			Badge:      g.Status,
			BadgeClass: CompliancePass.Treatment().BadgeClass,
			Icon:       "file-text",
		})
	}
	return WidgetData{
		"kind":  KindGuidelines,
		"title": widgetTitle(meta, "Investment Guidelines"),
		"upload": Control{
			Kind:   ControlFile,
			Name:   ParamGuidelines,
			Label:  "Upload Guidelines",
			Value:  meta.State.Guidelines,
			Accept: accept,
		},
		"upload_action": strings.TrimRight(meta.BasePath, "/") + GuidelinesUploadPath,
		"uploaded":      meta.State.Guidelines,
		"items":         items,
		"actions":       InertButtons(stringSliceValue(meta.Instance.Configuration["actions"])),
	}, nil
}

// progressClass maps a text colour class onto its background variant.
func progressClass(t Treatment) string {
	return strings.Replace(t.TextClass, "text-", "bg-", 1)
}

func rulesTableWidget(meta WidgetContext, f *Fixtures) (WidgetData, error) {
	table := Table{
		Columns: []Column{
			{Key: "rule", Label: "Rule"},
			{Key: "current", Label: "Current", Align: "right"},
			{Key: "limit", Label: "Limit", Align: "right"},
			{Key: "utilization", Label: "Utilization"},
			{Key: "severity", Label: "Severity"},
			{Key: "status", Label: "Status"},
		},
	}
	for _, rule := range f.ComplianceRules {
		treatment := rule.Status.Treatment()
		utilization := Cell{Text: NotApplicable}
		if pct, ok := rule.Utilization(); ok {
			label := UtilizationLabel(rule.Current, rule.Limit)
			utilization = Cell{Text: label, Progress: NewProgress(pct, label, progressClass(treatment))}
		}
		table.Rows = append(table.Rows, Row{Cells: []Cell{
			{Text: rule.Rule},
			{Text: FormatTablePercent(rule.Current)},
			{Text: FormatTablePercent(rule.Limit)},
			utilization,
			{Text: strings.ToUpper(string(rule.Severity)), Class: rule.Severity.TextClass()},
			{Text: strings.ToUpper(string(rule.Status)), Icon: treatment.Icon, Badge: treatment.BadgeClass, Class: treatment.TextClass},
		}})
	}
	return WidgetData{
		"kind":  KindTable,
		"title": widgetTitle(meta, "Compliance Rules Monitor"),
		"table": table,
	}, nil
}
