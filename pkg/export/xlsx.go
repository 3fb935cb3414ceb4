package export

import (
	"fmt"
	"strings"

	"github.com/tosih/injector-calc/pkg/models"
	"github.com/xuri/excelize/v2"
)

// Excel caps sheet names at 31 characters
const maxSheetName = 31

// SheetName derives a valid, unique worksheet name for a map
func SheetName(name string, used map[string]bool) string {
	r := strings.NewReplacer(":", "", "\\", "", "/", "", "?", "", "*", "", "[", "(", "]", ")")
	base := r.Replace(name)
	if len(base) > maxSheetName {
		base = base[:maxSheetName]
	}
	sheet := base
	for i := 2; used[sheet]; i++ {
		suffix := fmt.Sprintf(" %d", i)
		cut := base
		if len(cut)+len(suffix) > maxSheetName {
			cut = cut[:maxSheetName-len(suffix)]
		}
		sheet = cut + suffix
	}
	used[sheet] = true
	return sheet
}

// ExportMapsToXLSX writes every map to its own worksheet of one workbook
func ExportMapsToXLSX(path string, maps []*models.FuelMap) error {
	if len(maps) == 0 {
		return fmt.Errorf("no maps to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	used := map[string]bool{}
	for i, m := range maps {
		sheet := SheetName(m.Config.Name, used)
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}
		if err := writeMapSheet(f, sheet, m); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeMapSheet(f *excelize.File, sheet string, m *models.FuelMap) error {
	set := func(col, row int, v interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}

	if err := set(1, 1, m.Config.Name); err != nil {
		return err
	}
	if err := set(1, 2, "Unit: "+m.Config.Unit); err != nil {
		return err
	}

	// Grid starts on row 4: header row of RPM, first column of MAP
	const top = 4
	if err := set(1, top, "MAP\\RPM"); err != nil {
		return err
	}
	for j, rpm := range m.Config.RPMAxis {
		if err := set(j+2, top, rpm); err != nil {
			return err
		}
	}
	for i, kpa := range m.Config.MAPAxis {
		if err := set(1, top+i+1, kpa); err != nil {
			return err
		}
		for j := range m.Config.RPMAxis {
			if err := set(j+2, top+i+1, m.Data[i][j]); err != nil {
				return err
			}
		}
	}
	return nil
}
