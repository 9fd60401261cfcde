// Package workbook adapts an xlsx workbook to the document host contract used
// by the classification controller. The active worksheet receives the banner;
// document metadata lives in the workbook's custom properties.
package workbook

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/JaimeStill/tlpmark/pkg/tlp"
)

// ContentType is the media type of an xlsx workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Workbook is an open spreadsheet document. It is not safe for concurrent use.
type Workbook struct {
	file         *excelize.File
	sheet        string
	logger       *slog.Logger
	activeIndex  int
	interceptors []func() bool
	messages     []string
}

// New creates an empty workbook with a single default sheet.
func New(logger *slog.Logger) *Workbook {
	return wrap(excelize.NewFile(), logger)
}

// Open reads a workbook from r.
func Open(r io.Reader, logger *slog.Logger) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWorkbook, err)
	}
	return wrap(f, logger), nil
}

// OpenFile reads the workbook at path.
func OpenFile(path string, logger *slog.Logger) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWorkbook, err)
	}
	return wrap(f, logger), nil
}

func wrap(f *excelize.File, logger *slog.Logger) *Workbook {
	index := f.GetActiveSheetIndex()
	return &Workbook{
		file:        f,
		sheet:       f.GetSheetName(index),
		logger:      logger.With("system", "workbook"),
		activeIndex: index,
	}
}

// File exposes the underlying excelize file.
func (w *Workbook) File() *excelize.File {
	return w.file
}

// Sheet returns the name of the worksheet that carries the banner.
func (w *Workbook) Sheet() string {
	return w.sheet
}

// Close releases temporary files held by the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Property returns a custom document property rendered as a string.
func (w *Workbook) Property(name string) (string, bool, error) {
	props, err := w.file.GetCustomProps()
	if err != nil {
		return "", false, fmt.Errorf("read custom properties: %w", err)
	}
	for _, p := range props {
		if p.Name == name {
			return fmt.Sprint(p.Value), true, nil
		}
	}
	return "", false, nil
}

// SetProperty deletes any existing value under name and adds value as a string property.
func (w *Workbook) SetProperty(name, value string) error {
	_, ok, err := w.Property(name)
	if err != nil {
		return err
	}
	if ok {
		if err := w.file.SetCustomProps(excelize.CustomProperty{Name: name}); err != nil {
			return fmt.Errorf("delete custom property %s: %w", name, err)
		}
	}
	if err := w.file.SetCustomProps(excelize.CustomProperty{Name: name, Value: value}); err != nil {
		return fmt.Errorf("add custom property %s: %w", name, err)
	}
	return nil
}

// InsertBlankRowAtTop shifts the active sheet down by one row.
func (w *Workbook) InsertBlankRowAtTop() error {
	if err := w.file.InsertRows(w.sheet, 1, 1); err != nil {
		return fmt.Errorf("insert row: %w", err)
	}
	return nil
}

// ClearFirstRow empties every used cell in row one, unmerges ranges that
// start in it, and resets the row and cell styles.
func (w *Workbook) ClearFirstRow() error {
	if err := w.unmergeFirstRow(); err != nil {
		return err
	}

	cols, err := w.usedColumns()
	if err != nil {
		return err
	}

	for col := 1; col <= cols; col++ {
		cell, err := excelize.CoordinatesToCellName(col, 1)
		if err != nil {
			return err
		}
		if err := w.file.SetCellDefault(w.sheet, cell, ""); err != nil {
			return fmt.Errorf("clear %s: %w", cell, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	if err := w.file.SetCellStyle(w.sheet, "A1", last, 0); err != nil {
		return fmt.Errorf("reset cell style: %w", err)
	}
	if err := w.file.SetRowStyle(w.sheet, 1, 1, 0); err != nil {
		return fmt.Errorf("reset row style: %w", err)
	}
	return nil
}

func (w *Workbook) unmergeFirstRow() error {
	merged, err := w.file.GetMergeCells(w.sheet)
	if err != nil {
		return fmt.Errorf("read merged cells: %w", err)
	}

	for _, m := range merged {
		_, row, err := excelize.CellNameToCoordinates(m.GetStartAxis())
		if err != nil {
			return err
		}
		if row != 1 {
			continue
		}
		if err := w.file.UnmergeCell(w.sheet, m.GetStartAxis(), m.GetEndAxis()); err != nil {
			return fmt.Errorf("unmerge %s:%s: %w", m.GetStartAxis(), m.GetEndAxis(), err)
		}
	}
	return nil
}

// WriteFirstRowBanner writes text to A1 with the given font color and size.
func (w *Workbook) WriteFirstRowBanner(text string, color tlp.Color, fontSize float64) error {
	style, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Color: color.Hex(),
			Size:  fontSize,
		},
	})
	if err != nil {
		return fmt.Errorf("create banner style: %w", err)
	}

	if err := w.file.SetCellStr(w.sheet, "A1", text); err != nil {
		return fmt.Errorf("write banner: %w", err)
	}
	if err := w.file.SetCellStyle(w.sheet, "A1", "A1", style); err != nil {
		return fmt.Errorf("style banner: %w", err)
	}
	return nil
}

// ExitEditModeIfNeeded records the active sheet so it can be restored.
// A file-backed workbook has no interactive cell-edit state to leave.
func (w *Workbook) ExitEditModeIfNeeded() error {
	w.activeIndex = w.file.GetActiveSheetIndex()
	return nil
}

// RestoreSelection re-activates the sheet recorded by ExitEditModeIfNeeded.
func (w *Workbook) RestoreSelection() error {
	w.file.SetActiveSheet(w.activeIndex)
	return nil
}

// ShowBlockingError records message for the pending save and logs it.
func (w *Workbook) ShowBlockingError(message string) {
	w.logger.Warn("blocking error", "message", message)
	w.messages = append(w.messages, message)
}

// OnBeforeSave registers a save interceptor. Interceptors run in
// registration order; the first false return cancels the save.
func (w *Workbook) OnBeforeSave(handler func() bool) {
	w.interceptors = append(w.interceptors, handler)
}

// Save runs the save interceptors and writes the workbook to out.
// A cancelled save writes nothing and returns ErrSaveCancelled.
func (w *Workbook) Save(out io.Writer) error {
	if err := w.beforeSave(); err != nil {
		return err
	}
	if err := w.file.Write(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveFile runs the save interceptors and writes the workbook to path.
func (w *Workbook) SaveFile(path string) error {
	if err := w.beforeSave(); err != nil {
		return err
	}
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

// Banner describes the first cell of the banner row.
type Banner struct {
	Text     string
	Color    string
	FontSize float64
}

// FirstRowBanner reads the text and font of A1 on the banner sheet.
func (w *Workbook) FirstRowBanner() (Banner, error) {
	text, err := w.file.GetCellValue(w.sheet, "A1")
	if err != nil {
		return Banner{}, fmt.Errorf("read banner: %w", err)
	}

	b := Banner{Text: text}

	idx, err := w.file.GetCellStyle(w.sheet, "A1")
	if err != nil {
		return b, fmt.Errorf("read banner style: %w", err)
	}
	style, err := w.file.GetStyle(idx)
	if err != nil {
		return b, fmt.Errorf("read banner style: %w", err)
	}
	if style != nil && style.Font != nil {
		b.Color = normalizeColor(style.Font.Color)
		b.FontSize = style.Font.Size
	}
	return b, nil
}

func (w *Workbook) beforeSave() error {
	w.messages = nil
	for _, fn := range w.interceptors {
		if !fn() {
			msg := strings.Join(w.messages, "; ")
			if msg == "" {
				msg = "save interceptor denied"
			}
			return fmt.Errorf("%w: %s", ErrSaveCancelled, msg)
		}
	}
	return nil
}

func (w *Workbook) usedColumns() (int, error) {
	dim, err := w.file.GetSheetDimension(w.sheet)
	if err != nil {
		return 0, fmt.Errorf("read sheet dimension: %w", err)
	}

	cols := 1
	if _, last, ok := strings.Cut(dim, ":"); ok {
		if c, _, err := excelize.CellNameToCoordinates(last); err == nil {
			cols = c
		}
	}

	rows, err := w.file.GetRows(w.sheet)
	if err != nil {
		return 0, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) > 0 {
		cols = max(cols, len(rows[0]))
	}
	return cols, nil
}

// normalizeColor reduces ARGB or #RRGGBB forms to uppercase RRGGBB.
func normalizeColor(c string) string {
	c = strings.ToUpper(strings.TrimPrefix(c, "#"))
	if len(c) == 8 {
		c = c[2:]
	}
	return c
}
