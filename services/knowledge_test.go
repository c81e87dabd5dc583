package services

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeDrives saves rows to the first sheet of a new workbook.
func writeDrives(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "drives.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func TestReadPlacementDrives(t *testing.T) {
	path := writeDrives(t, [][]interface{}{
		{"Company", "Date", "CGPA", "Package", "Roles"},
		{"Acme", "Dec 1, 2025", 7.5, "10 LPA", "SDE; Data Analyst"},
		{"", "", "", "", ""},
		{"Globex", "Dec 9, 2025", 6, "6 LPA", "Support Engineer"},
	})

	drives, err := ReadPlacementDrives(path)
	if err != nil {
		t.Fatalf("ReadPlacementDrives: %v", err)
	}

	want := []PlacementDrive{
		{Name: "Acme", Date: "Dec 1, 2025", CGPA: 7.5, Package: "10 LPA", Roles: []string{"SDE", "Data Analyst"}},
		{Name: "Globex", Date: "Dec 9, 2025", CGPA: 6, Package: "6 LPA", Roles: []string{"Support Engineer"}},
	}
	if !reflect.DeepEqual(drives, want) {
		t.Errorf("got %+v\nwant %+v", drives, want)
	}
}

func TestReadPlacementDrivesColumnOrder(t *testing.T) {
	path := writeDrives(t, [][]interface{}{
		{"roles", "PACKAGE", "company", "cgpa", "date"},
		{"Engineer,Analyst", "5 LPA", "Initech", 6.5, "Jan 3"},
	})

	drives, err := ReadPlacementDrives(path)
	if err != nil {
		t.Fatalf("ReadPlacementDrives: %v", err)
	}
	if len(drives) != 1 || drives[0].Name != "Initech" || drives[0].CGPA != 6.5 || len(drives[0].Roles) != 2 {
		t.Errorf("unexpected drives %+v", drives)
	}
}

func TestReadPlacementDrivesErrors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]interface{}
	}{
		{"missing column", [][]interface{}{{"Company", "Date", "CGPA", "Package"}, {"Acme", "x", 7, "y"}}},
		{"bad cgpa", [][]interface{}{{"Company", "Date", "CGPA", "Package", "Roles"}, {"Acme", "x", "seven", "y", "z"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadPlacementDrives(writeDrives(t, tt.rows)); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, err := ReadPlacementDrives(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadKnowledgeBase(t *testing.T) {
	path := writeDrives(t, [][]interface{}{
		{"Company", "Date", "CGPA", "Package", "Roles"},
		{"Acme", "Dec 1, 2025", 7.5, "10 LPA", "SDE"},
	})

	kb := LoadKnowledgeBase(path)
	if len(kb.Placements.Companies) != 1 || kb.Placements.Companies[0].Name != "Acme" {
		t.Errorf("drives not imported: %+v", kb.Placements.Companies)
	}
	if kb.DrivesSource() != path {
		t.Errorf("DrivesSource = %q", kb.DrivesSource())
	}

	fallback := LoadKnowledgeBase(filepath.Join(t.TempDir(), "missing.xlsx"))
	if len(fallback.Placements.Companies) != 5 || fallback.DrivesSource() != "built-in" {
		t.Errorf("expected built-in drives, got %d from %s", len(fallback.Placements.Companies), fallback.DrivesSource())
	}

	if LoadKnowledgeBase("").DrivesSource() != "built-in" {
		t.Error("empty path should keep built-in drives")
	}
}

func TestKnowledgeBaseJSON(t *testing.T) {
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal([]byte(DefaultKnowledgeBase().JSON()), &decoded); err != nil {
		t.Fatalf("JSON is not valid: %v", err)
	}
	for _, key := range []string{"college", "revaluation", "fees", "placements", "hostel", "attendance", "exams", "library"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing %q section", key)
		}
	}
}
