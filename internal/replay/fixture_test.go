package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/inference"
)

// #region fixture-tests

// TestFixture_PatientCases loads the reference patient fixture, replays it
// and requires every case to pass. This is the primary regression test: any
// change to breakpoints, rules or centers shows up here.
func TestFixture_PatientCases(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "patient_cases.json"))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}

	engine, err := f.Config.ToEngine()
	if err != nil {
		t.Fatalf("ToEngine: %v", err)
	}
	cases := make([]Case, len(f.Cases))
	for i := range f.Cases {
		cases[i] = f.Cases[i].ToCase()
	}

	results := Replay(engine, cases, f.Config.ToReplayConfig())

	if len(results) != len(f.Cases) {
		t.Fatalf("expected %d results, got %d", len(f.Cases), len(results))
	}
	for i, r := range results {
		if r.CaseID != f.Cases[i].ID {
			t.Errorf("case %d: expected id=%s, got %s", i, f.Cases[i].ID, r.CaseID)
		}
		if r.Action != "pass" {
			t.Errorf("case %s: expected pass, got %s (reason: %s)", r.CaseID, r.Action, r.Reason)
		}
	}

	s := Summarize(results)
	if s.Passed != len(f.Cases) || s.Failed != 0 || s.Errors != 0 {
		t.Errorf("unexpected summary: %+v", s)
	}
}

// TestLoadFixture_NotFound verifies error on missing file.
func TestLoadFixture_NotFound(t *testing.T) {
	_, err := LoadFixture("testdata/nonexistent.json")
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

// TestLoadFixture_Malformed verifies error on invalid JSON.
func TestLoadFixture_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not valid json}"), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	_, err := LoadFixture(path)
	if err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}

func TestToEngine_UnknownBank(t *testing.T) {
	fc := FixtureConfig{Bank: "experimental"}
	if _, err := fc.ToEngine(); err == nil {
		t.Fatal("expected error for unknown bank")
	}
}

func TestToEngine_ClassicWithCenters(t *testing.T) {
	fc := FixtureConfig{Bank: "classic", Centers: &inference.Centers{Healthy: 1, Middle: 2, Sick: 3}}
	engine, err := fc.ToEngine()
	if err != nil {
		t.Fatalf("ToEngine: %v", err)
	}
	if engine.Bank().Len() != 6 {
		t.Errorf("expected classic bank of 6 rules, got %d", engine.Bank().Len())
	}
	if engine.Centers().Healthy != 1 {
		t.Errorf("centers not applied: %+v", engine.Centers())
	}
}

// TestExportFixture_RoundTrip exports a baseline from the engine and replays
// it against the same engine.
func TestExportFixture_RoundTrip(t *testing.T) {
	engine := inference.New()
	ms := []fuzzify.Measurement{
		{BloodPressure: 125, Cholesterol: 185, HeartRate: 72, Age: 41, Smoking: 0.2, Glucose: 95},
		{BloodPressure: 165, Cholesterol: 250, HeartRate: 110, Age: 66, Smoking: 1.1, Glucose: 180},
	}
	f := ExportFixture("export", FixtureConfig{}, engine, ms, []string{"first"})

	if len(f.Cases) != 2 || f.Cases[0].ID != "first" || f.Cases[1].ID != "case-2" {
		t.Fatalf("unexpected cases: %+v", f.Cases)
	}

	cases := []Case{f.Cases[0].ToCase(), f.Cases[1].ToCase()}
	for _, r := range Replay(engine, cases, DefaultReplayConfig()) {
		if r.Action != "pass" || r.MaxDelta != 0 {
			t.Errorf("case %s: %s (delta %g)", r.CaseID, r.Action, r.MaxDelta)
		}
	}
}

// #endregion fixture-tests
