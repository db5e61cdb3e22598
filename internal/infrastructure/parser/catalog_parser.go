package parser

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/chassis-price-bot/internal/domain/entity"
)

var (
	ErrDuplicateChassis   = errors.New("duplicate chassis code")
	ErrUnsupportedFormat  = errors.New("unsupported catalog format")
	ErrMissingChassisCode = errors.New("row without chassis code")
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// CatalogParser katalog faylini (xlsx, csv, yaml) Vehicle ro'yxatiga aylantiradi
type CatalogParser struct{}

// NewCatalogParser yangi parser yaratish
func NewCatalogParser() *CatalogParser {
	return &CatalogParser{}
}

type yamlCatalog struct {
	Vehicles []entity.Vehicle `yaml:"vehicles"`
}

// Default returns the catalog bundled with the binary.
func (p *CatalogParser) Default() ([]entity.Vehicle, error) {
	return p.ParseYAML(defaultCatalogYAML)
}

// ParseFile kengaytma bo'yicha formatni tanlaydi
func (p *CatalogParser) ParseFile(path string) ([]entity.Vehicle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if err := checkSignature(ext, data); err != nil {
		return nil, err
	}
	switch ext {
	case ".xlsx":
		return p.ParseXLSX(bytes.NewReader(data))
	case ".csv":
		return p.ParseCSV(bytes.NewReader(data))
	case ".yaml", ".yml":
		return p.ParseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// ParseYAML expects a top-level "vehicles" list.
func (p *CatalogParser) ParseYAML(data []byte) ([]entity.Vehicle, error) {
	var doc yamlCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml decode: %w", err)
	}
	return validateCatalog(doc.Vehicles, func(i int) string { return fmt.Sprintf("vehicle %d", i+1) })
}

// ParseXLSX birinchi sheetdan o'qiydi, birinchi qator sarlavha
func (p *CatalogParser) ParseXLSX(r io.Reader) ([]entity.Vehicle, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rowsToVehicles(rows, nil)
}

// ParseCSV expects a header row like ParseXLSX.
func (p *CatalogParser) ParseCSV(r io.Reader) ([]entity.Vehicle, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	var rows [][]string
	var lines []int
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		// csv.Reader bo'sh qatorlarni tashlab ketadi, shuning uchun haqiqiy qator raqami saqlanadi
		line, _ := reader.FieldPos(0)
		rows = append(rows, rec)
		lines = append(lines, line)
	}
	return rowsToVehicles(rows, lines)
}

type columnIndex struct {
	chassis, model, color, year int
}

func detectColumns(header []string) (columnIndex, bool) {
	idx := columnIndex{chassis: -1, model: -1, color: -1, year: -1}
	for i, raw := range header {
		h := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case strings.Contains(h, "chassis"):
			idx.chassis = i
		case strings.Contains(h, "model") && !strings.Contains(h, "year"):
			idx.model = i
		case strings.Contains(h, "color") || strings.Contains(h, "colour"):
			idx.color = i
		case strings.Contains(h, "year"):
			idx.year = i
		}
	}
	return idx, idx.chassis >= 0
}

// rowsToVehicles lines[i] rows[i] ning fayldagi qator raqami; nil bo'lsa i+1 (xlsx).
func rowsToVehicles(rows [][]string, lines []int) ([]entity.Vehicle, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	lineOf := func(i int) int {
		if i < len(lines) {
			return lines[i]
		}
		return i + 1
	}
	idx, ok := detectColumns(rows[0])
	body := rows[1:]
	offset := 1
	if !ok {
		// sarlavha yo'q: chassis, model, color, year tartibi
		idx = columnIndex{chassis: 0, model: 1, color: 2, year: 3}
		body = rows
		offset = 0
	}

	cell := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	vehicles := make([]entity.Vehicle, 0, len(body))
	vehicleLines := make([]int, 0, len(body))
	for n, row := range body {
		if isBlankRow(row) {
			continue
		}
		line := lineOf(offset + n)
		year := 0
		if raw := cell(row, idx.year); raw != "" {
			y, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid year %q", line, raw)
			}
			year = y
		}
		vehicles = append(vehicles, entity.Vehicle{
			ChassisCode: cell(row, idx.chassis),
			ModelName:   cell(row, idx.model),
			Color:       cell(row, idx.color),
			ModelYear:   year,
		})
		vehicleLines = append(vehicleLines, line)
	}
	return validateCatalog(vehicles, func(i int) string { return fmt.Sprintf("row %d", vehicleLines[i]) })
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// validateCatalog normalizes codes and enforces case-insensitive uniqueness.
// where names entry i in error messages.
func validateCatalog(vehicles []entity.Vehicle, where func(i int) string) ([]entity.Vehicle, error) {
	seen := make(map[string]struct{}, len(vehicles))
	out := make([]entity.Vehicle, 0, len(vehicles))
	for i, v := range vehicles {
		v.ChassisCode = entity.NormalizeChassis(v.ChassisCode)
		if v.ChassisCode == "" {
			return nil, fmt.Errorf("%w (%s)", ErrMissingChassisCode, where(i))
		}
		if _, dup := seen[v.ChassisCode]; dup {
			return nil, fmt.Errorf("%w: %s (%s)", ErrDuplicateChassis, v.ChassisCode, where(i))
		}
		seen[v.ChassisCode] = struct{}{}
		v.ModelName = strings.TrimSpace(v.ModelName)
		v.Color = strings.TrimSpace(v.Color)
		out = append(out, v)
	}
	return out, nil
}
