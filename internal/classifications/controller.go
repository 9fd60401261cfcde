package classifications

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/tlpmark/pkg/tlp"
)

// Messages shown through the host Notifier when a save is blocked.
const (
	UnclassifiedMessage = "document must be classified before saving"
	FailureMessage      = "document classification could not be verified; save cancelled"
)

// Controller reads and applies TLP classifications against a single host
// document and guards its saves. It holds no classification state of its
// own: every decision re-reads the host.
type Controller struct {
	host   Host
	logger *slog.Logger
}

// New creates a Controller bound to host.
func New(host Host, logger *slog.Logger) *Controller {
	return &Controller{
		host:   host,
		logger: logger.With("system", "classifications"),
	}
}

// Register installs the save guard as the host's save interceptor.
func (c *Controller) Register() {
	c.host.OnBeforeSave(c.BeforeSave)
}

// Current returns the document's classification, or tlp.None when the
// property is absent or holds an unrecognized value.
func (c *Controller) Current() (tlp.Classification, error) {
	value, ok, err := c.host.Property(tlp.PropertyName)
	if err != nil {
		return tlp.None, hostFailure("read classification property", err)
	}
	if !ok {
		return tlp.None, nil
	}
	return tlp.ClassificationForToken(value), nil
}

// Apply sets the document's classification and re-renders the banner.
// A banner row is inserted only when the document was unclassified.
func (c *Controller) Apply(classification tlp.Classification) (err error) {
	record, err := tlp.RecordFor(classification)
	if err != nil {
		return err
	}

	if err := c.host.ExitEditModeIfNeeded(); err != nil {
		return hostFailure("exit edit mode", err)
	}
	defer func() {
		if rerr := c.host.RestoreSelection(); rerr != nil && err == nil {
			err = hostFailure("restore selection", rerr)
		}
	}()

	current, err := c.Current()
	if err != nil {
		return err
	}

	if current == tlp.None {
		if err := c.host.InsertBlankRowAtTop(); err != nil {
			return hostFailure("insert banner row", err)
		}
	}

	if err := c.host.SetProperty(tlp.PropertyName, record.Token); err != nil {
		return hostFailure("write classification property", err)
	}

	if err := c.host.ClearFirstRow(); err != nil {
		return hostFailure("clear banner row", err)
	}

	if err := c.host.WriteFirstRowBanner(record.Header, record.Color, tlp.BannerFontSize); err != nil {
		return hostFailure("write banner", err)
	}

	c.logger.Info("classification applied",
		"previous", current,
		"classification", classification,
		"token", record.Token,
	)
	return nil
}

// CheckSave decides whether the document may be saved. It returns
// ErrUnclassified for an unclassified document without touching it.
// A classified document has its banner re-applied before the save proceeds.
// Any failure denies the save.
func (c *Controller) CheckSave() error {
	current, err := c.Current()
	if err != nil {
		c.deny(FailureMessage, err)
		return err
	}

	if current == tlp.None {
		c.deny(UnclassifiedMessage, ErrUnclassified)
		return ErrUnclassified
	}

	if err := c.Apply(current); err != nil {
		c.deny(FailureMessage, err)
		return err
	}

	return nil
}

// BeforeSave adapts CheckSave to the host's save interceptor contract.
func (c *Controller) BeforeSave() bool {
	return c.CheckSave() == nil
}

func (c *Controller) deny(message string, cause error) {
	if errors.Is(cause, ErrUnclassified) {
		c.logger.Info("save denied", "reason", message)
	} else {
		c.logger.Error("save denied", "reason", message, "error", cause)
	}
	c.host.ShowBlockingError(message)
}

func hostFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrHostOperationFailed, op, err)
}
