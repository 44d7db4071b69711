package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Sample extracts as the source systems export them: upper-case headers with
// spaces, a placeholder column, compact times and a few bad rows.
//
// Reconciled with the default report configuration they produce:
//
//	2025-07-05 DEL 8-12 CP  pairing starts 1  activations 2
//	2025-07-05 DEL 8-12 FO  pairing starts 1  activations 0
//	2025-07-06 BOM 4-8  CP  pairing starts 1  activations 0
const (
	RosterCSV = "ID,PAIRING START DATE,DUTY DAY,TRIP CODE,DUTY CODE,PUBLACT,FLEET TYPE,SUBFLEET,PAIRING START DEP,POS,STD,REPORTING,Unnamed: 12\n" +
		"1001,2025-07-05,2025-07-05,T100,FDUT,A,320,323,DEL,1,930,,\n" +
		"1001,2025-07-05,2025-07-05,T100,FDUT,A,320,323,DEL,1,1100,,\n" +
		"1002,2025-07-05,2025-07-05,T200,FDUT,A,321,32D,DEL,2,2025-07-05 10:15,,\n" +
		"1003,2025-07-06,2025-07-06,T300,FDUT,A,320,323,BOM,1.0,,0545,\n" +
		"1004,2025-07-06,2025-07-06,T400,LAYO,A,320,323,DEL,1,1200,,\n"

	HeadcountCSV = "IGA,CREW BASE,RANK\n" +
		"2001,DEL,CP\n" +
		"2002,BOM,FO\n" +
		"2001,BOM,CP\n"

	StandbyCSV = "CREW ID,FDUT TIME IST,OLD DUTY CODE,NEW DUTY CODE\n" +
		"2001,2025-07-05 09:10,SBY,FDUT\n" +
		"2001,2025-07-05 11:59:59,SBY,FDUT\n" +
		"2002,2025-07-06 06:00,SBY,FDUT\n" +
		"9999,2025-07-05 09:00,SBY,FDUT\n" +
		"2001,not a time,SBY,FDUT\n"

	// StandbyHeaderOnlyCSV has the standby columns and no rows
	StandbyHeaderOnlyCSV = "CREW ID,FDUT TIME IST,OLD DUTY CODE,NEW DUTY CODE\n"
)

// InputFiles locates a written set of sample extracts
type InputFiles struct {
	Dir       string
	Roster    string
	Headcount string
	Standby   string
}

// WriteFile writes content to name under dir and returns the full path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}

// WriteSampleInputs writes the sample extracts into a fresh temp directory
func WriteSampleInputs(t *testing.T) InputFiles {
	t.Helper()

	dir := t.TempDir()
	return InputFiles{
		Dir:       dir,
		Roster:    WriteFile(t, dir, "roster.csv", RosterCSV),
		Headcount: WriteFile(t, dir, "headcount.csv", HeadcountCSV),
		Standby:   WriteFile(t, dir, "standby.csv", StandbyCSV),
	}
}
