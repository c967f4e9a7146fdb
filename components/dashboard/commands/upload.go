package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-risk-dashboard/components/dashboard"
)

// UploadGuidelinesInput carries the client filename of an uploaded
// guidelines document.
type UploadGuidelinesInput struct {
	Filename string `json:"filename"`
}

// UploadGuidelinesCommand accepts a guidelines upload. File content is never
// stored; only the cleaned filename is echoed back into the view state.
type UploadGuidelinesCommand struct {
	service   *dashboard.Service
	telemetry dashboard.Telemetry
}

// NewUploadGuidelinesCommand wires the command.
func NewUploadGuidelinesCommand(service *dashboard.Service, telemetry dashboard.Telemetry) *UploadGuidelinesCommand {
	return &UploadGuidelinesCommand{service: service, telemetry: dashboard.TelemetryOrNoop(telemetry)}
}

var _ gocommand.Commander[UploadGuidelinesInput] = (*UploadGuidelinesCommand)(nil)

// Execute validates the upload and records it.
func (c *UploadGuidelinesCommand) Execute(ctx context.Context, msg UploadGuidelinesInput) error {
	_, err := c.Accept(ctx, msg)
	return err
}

// Accept validates the upload and returns the view state to redirect to.
func (c *UploadGuidelinesCommand) Accept(ctx context.Context, msg UploadGuidelinesInput) (dashboard.ViewState, error) {
	if c.service == nil {
		return dashboard.ViewState{}, errors.New("upload command requires service")
	}
	name, err := dashboard.CleanUploadFilename(msg.Filename, c.service.Fixtures().Compliance.AcceptedExtensions)
	if err != nil {
		c.telemetry.Record(ctx, dashboard.EventGuidelinesRejected, map[string]any{
			"filename": msg.Filename,
			"error":    err.Error(),
		})
		return dashboard.ViewState{}, err
	}
	c.service.RecordUpload(ctx, name)
	c.telemetry.Record(ctx, dashboard.EventGuidelinesAccepted, map[string]any{"filename": name})
	return dashboard.UploadRedirect(name), nil
}
