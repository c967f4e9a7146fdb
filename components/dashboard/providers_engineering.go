package dashboard

func systemOverviewWidget(meta WidgetContext, f *Fixtures) (WidgetData, error) {
	limit := widgetLimit(meta, 4, len(f.SystemMetrics))
	cards := make([]StatCard, 0, limit)
	for _, m := range f.SystemMetrics[:limit] {
		t := m.Status.Treatment()
		cards = append(cards, StatCard{
			Label:      m.Name,
			Value:      m.Display(),
			ValueClass: t.TextClass,
			Treatment:  t,
		})
	}
	return WidgetData{
		"kind":  KindStatCards,
		"title": widgetTitle(meta, "System Overview"),
		"cards": cards,
	}, nil
}

func latencyChartConfig(meta WidgetContext, f *Fixtures) map[string]any {
	axis := make([]string, 0, len(f.Engineering.APILatency))
	latency := make([]float64, 0, len(f.Engineering.APILatency))
	errs := make([]float64, 0, len(f.Engineering.APILatency))
	for _, pt := range f.Engineering.APILatency {
		axis = append(axis, pt.Time)
		latency = append(latency, pt.Latency)
		errs = append(errs, pt.Errors)
	}
	return map[string]any{
		"title":   widgetTitle(meta, "API Latency & Errors"),
		"x_axis":  axis,
		"y_names": []string{"Latency (ms)", "Errors"},
		"series": []map[string]any{
			{"name": "Latency (ms)", "data": latency, "y_axis": 0},
			{"name": "Errors", "data": errs, "y_axis": 1, "dashed": true},
		},
	}
}

func endpointsWidget(meta WidgetContext, f *Fixtures) (WidgetData, error) {
	table := Table{
		Columns: []Column{
			{Key: "endpoint", Label: "Endpoint"},
			{Key: "latency", Label: "Avg Latency", Align: "right"},
			{Key: "calls", Label: "Calls", Align: "right"},
			{Key: "errors", Label: "Errors", Align: "right"},
		},
	}
	for _, ep := range f.Engineering.Endpoints {
		table.Rows = append(table.Rows, Row{Cells: []Cell{
			{Text: ep.Path, Class: "font-mono"},
			{Text: FormatNumber(ep.AvgLatency) + "ms", Class: LatencyTone(ep.AvgLatency).TextClass()},
			{Text: FormatThousands(ep.Calls)},
			{Text: FormatNumber(float64(ep.Errors)), Class: ErrorCountTone(ep.Errors).TextClass()},
		}})
	}
	return WidgetData{
		"kind":  KindTable,
		"title": widgetTitle(meta, "Endpoint Performance"),
		"table": table,
	}, nil
}

func resourcesWidget(meta WidgetContext, f *Fixtures) (WidgetData, error) {
	items := make([]ListItem, 0, len(f.Engineering.Resources))
	for _, r := range f.Engineering.Resources {
		t := r.Status.Treatment()
		label := WithUnit(FormatNumber(r.Value), r.Unit)
		item := ListItem{Title: r.Name, Meta: label, Icon: t.Icon}
		if pct, ok := Utilization(r.Value, r.Max); ok {
			item.Progress = NewProgress(pct, label, progressClass(t))
		}
		items = append(items, item)
	}
	return WidgetData{
		"kind":  KindProgress,
		"title": widgetTitle(meta, "System Resources"),
		"items": items,
	}, nil
}

func databaseWidget(meta WidgetContext, f *Fixtures) (WidgetData, error) {
	items := make([]ListItem, 0, len(f.Engineering.Database))
	for _, stat := range f.Engineering.Database {
		t := stat.Status.Treatment()
		items = append(items, ListItem{
			Title:      stat.Name,
			Meta:       stat.Value,
			Icon:       t.Icon,
			BadgeClass: t.TextClass,
		})
	}
	return WidgetData{
		"kind":  KindList,
		"title": widgetTitle(meta, "Database Health"),
		"items": items,
	}, nil
}

func configPanelsWidget(meta WidgetContext, f *Fixtures) (WidgetData, error) {
	return WidgetData{
		"kind":   KindConfig,
		"title":  widgetTitle(meta, "Configuration"),
		"panels": f.Engineering.ConfigPanels,
	}, nil
}
