// Package importer turns CSV spreadsheets of research initiatives into
// study records resolved against a catalog.
package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/platformbuilds/studygraph/internal/catalog"
	"github.com/platformbuilds/studygraph/internal/ids"
	"github.com/platformbuilds/studygraph/internal/models"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

// ImportedStatus marks every record created by an import.
const ImportedStatus = "📥 Importado"

const bom = "\uFEFF"

var (
	typeCodePattern    = regexp.MustCompile(`A_([0-9])\.`)
	leadingDigit       = regexp.MustCompile(`^\s*([0-9])`)
	subproductTag      = regexp.MustCompile(`\[([^\]]*)\]`)
	techniqueSeparator = regexp.MustCompile(`[+,]`)
)

// DroppedRow explains why a data row produced no study. Line is 1-based
// and counts the header.
type DroppedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type Result struct {
	Studies []models.Study `json:"studies"`
	Rows    int            `json:"rows"`
	Dropped []DroppedRow   `json:"dropped"`
}

type Importer struct {
	catalog *catalog.Catalog
	maxRows int
	logger  logger.Logger
}

// New builds an importer. maxRows <= 0 disables the row limit.
func New(cat *catalog.Catalog, maxRows int, log logger.Logger) *Importer {
	return &Importer{catalog: cat, maxRows: maxRows, logger: log}
}

// Parse reads the whole CSV. A header missing any required column rejects
// the batch with *MissingColumnsError and no studies; unusable rows are
// dropped and reported in Result.Dropped.
func (im *Importer) Parse(r io.Reader) (*Result, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}

	idx, missing := resolveHeader(header)
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Required: RequiredColumns, Missing: missing}
	}

	res := &Result{Studies: []models.Study{}, Dropped: []DroppedRow{}}
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, fmt.Errorf("read csv: %w", err)
			}
			res.Rows++
			res.Dropped = append(res.Dropped, DroppedRow{Line: perr.StartLine, Reason: "unreadable row"})
			continue
		}
		line, _ := reader.FieldPos(0)
		if blank(rec) {
			continue
		}
		res.Rows++
		if im.maxRows > 0 && res.Rows > im.maxRows {
			return nil, fmt.Errorf("%w (%d)", ErrTooManyRows, im.maxRows)
		}

		get := func(col Column) string {
			if j, ok := idx[col]; ok && j < len(rec) {
				return strings.TrimSpace(rec[j])
			}
			return ""
		}

		s, reason := im.buildStudy(get)
		if reason != "" {
			res.Dropped = append(res.Dropped, DroppedRow{Line: line, Reason: reason})
			continue
		}
		res.Studies = append(res.Studies, s)
	}

	if len(res.Dropped) > 0 {
		im.logger.Warn("csv rows dropped", "rows", res.Rows, "dropped", len(res.Dropped))
	}
	im.logger.Debug("csv parsed", "rows", res.Rows, "studies", len(res.Studies))
	return res, nil
}

func (im *Importer) buildStudy(get func(Column) string) (models.Study, string) {
	it, ok := im.resolveType(get(ColInitiative))
	if !ok {
		return models.Study{}, "unknown initiative type"
	}
	digit, _ := catalog.TypeDigit(it.Code)

	vertical := strings.ToUpper(get(ColVertical))
	if !im.catalog.HasVertical(vertical) {
		return models.Study{}, "unknown vertical"
	}
	productID, ok := im.catalog.ProductForVertical(vertical)
	if !ok {
		return models.Study{}, "vertical has no product"
	}

	title, subproduct := SplitTitle(get(ColTitle))
	if title == "" {
		return models.Study{}, "empty title"
	}

	responsible := strings.ToUpper(get(ColResponsible))
	if !im.catalog.HasResponsible(responsible) {
		responsible = ""
	}
	level, _ := im.catalog.LevelKeyForLabel(get(ColLevel))

	s := models.Study{
		ID:                  ids.Format(digit, parseOrder(get(ColOrder))),
		InitiativeTypeCode:  it.Code,
		InitiativeTypeLabel: it.Label,
		Quarter:             strings.ToUpper(get(ColQuarter)),
		VerticalCode:        vertical,
		ProductID:           productID,
		SubproductName:      subproduct,
		TitleShort:          title,
		Techniques:          ParseTechniques(get(ColTechnique)),
		LevelKey:            level,
		Responsible:         responsible,
		Status:              ImportedStatus,
	}
	s.EnsureCollections()
	return s, ""
}

func (im *Importer) resolveType(cell string) (catalog.InitiativeType, bool) {
	var digit string
	if m := typeCodePattern.FindStringSubmatch(cell); m != nil {
		digit = m[1]
	} else if m := leadingDigit.FindStringSubmatch(cell); m != nil {
		digit = m[1]
	} else {
		return catalog.InitiativeType{}, false
	}
	return im.catalog.TypeByDigit(digit)
}

// parseOrder reads the order cell; anything non-numeric or negative is 0.
func parseOrder(cell string) int {
	n, err := strconv.Atoi(cell)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SplitTitle extracts the first [bracketed] segment as the subproduct name
// and returns the remaining title with whitespace collapsed.
func SplitTitle(raw string) (title, subproduct string) {
	loc := subproductTag.FindStringSubmatchIndex(raw)
	if loc == nil {
		return strings.Join(strings.Fields(raw), " "), ""
	}
	subproduct = strings.TrimSpace(raw[loc[2]:loc[3]])
	rest := raw[:loc[0]] + " " + raw[loc[1]:]
	return strings.Join(strings.Fields(rest), " "), subproduct
}

// ParseTechniques splits a technique cell on '+' or ','. "mix" in any case
// becomes ["Mix"].
func ParseTechniques(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return []string{}
	}
	if strings.EqualFold(cell, "mix") {
		return []string{"Mix"}
	}
	out := []string{}
	for _, part := range techniqueSeparator.Split(cell, -1) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
