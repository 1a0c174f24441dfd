package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/codec"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/history"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/inference"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/membership"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/rulebank"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Estimate the CHD risk score of one patient",
	RunE: func(cmd *cobra.Command, args []string) error {
		m := measurementFromFlags(cmd)
		jsonOut, _ := cmd.Flags().GetBool("json")
		verbose, _ := cmd.Flags().GetBool("verbose")
		adaptive, _ := cmd.Flags().GetBool("adaptive")

		if remote, _ := cmd.Flags().GetString("remote"); remote != "" {
			return diagnoseRemote(cmd.Context(), remote, m, jsonOut)
		}

		engine, err := newEngine()
		if err != nil {
			return err
		}
		hedge, _ := cmd.Flags().GetString("hedge")
		hedgeRule, _ := cmd.Flags().GetInt("hedge-rule")
		if engine, err = hedgedEngine(engine, hedge, hedgeRule); err != nil {
			return err
		}
		d := engine.Diagnose(m)

		var (
			score   *float64
			version string
		)
		if adaptive {
			p, store, err := openPipeline()
			if err != nil {
				return err
			}
			defer store.Close()
			model, v, err := p.Model(cmd.Context())
			if err != nil {
				return err
			}
			s, err := model.Predict(m)
			if err != nil {
				return err
			}
			log.Debug("adaptive prediction", zap.String("version", v.VersionID), zap.Float64("score", s))
			score = &s
			version = v.VersionID
		}

		if patient, _ := cmd.Flags().GetString("patient"); patient != "" {
			a := history.FromDiagnosis(patient, m, d)
			a.Adaptive = score
			a.VersionID = version
			if err := recordAssessment(cmd.Context(), a); err != nil {
				return err
			}
		}

		if jsonOut {
			out := struct {
				Measurement fuzzify.Measurement `json:"measurement"`
				inference.Diagnosis
				Adaptive *float64 `json:"adaptive,omitempty"`
			}{m, d, score}
			if !verbose {
				out.Diagnosis.Memberships = nil
				out.Diagnosis.Strengths = nil
			}
			return printJSON(out)
		}

		fmt.Printf("Patient: %s\n\n", m)
		if verbose {
			printMemberships(engine, d.Memberships)
			if err := printRuleStrengths(engine, m); err != nil {
				return err
			}
		}
		fmt.Printf("Mamdani (COG):             %.3f  %s\n", d.Mamdani, riskLabel(d.Mamdani))
		fmt.Printf("Sugeno (weighted average): %.3f  %s\n", d.Sugeno, riskLabel(d.Sugeno))
		if score != nil {
			fmt.Printf("Adaptive (neuro-fuzzy):    %.3f  %s\n", *score, riskLabel(*score))
		}
		return nil
	},
}

func init() {
	addMeasurementFlags(diagnoseCmd, referencePatient)
	diagnoseCmd.Flags().Bool("json", false, "Output as JSON")
	diagnoseCmd.Flags().Bool("adaptive", false, "Also score with the active neuro-fuzzy weights from the ledger")
	diagnoseCmd.Flags().String("remote", "", "Diagnose through a running chd server at this address")
	diagnoseCmd.Flags().String("hedge", "", "Linguistic hedge on one rule: indeed (mu^2) or somewhat (sqrt mu)")
	diagnoseCmd.Flags().Int("hedge-rule", 0, "ID of the rule the hedge modifies (required with --hedge)")
	diagnoseCmd.Flags().String("patient", "", "Record the result in the assessment history under this patient id")
}

// hedgedEngine returns e with hedge applied to rule ruleID, or e itself when
// no hedge is named.
func hedgedEngine(e *inference.Engine, hedge string, ruleID int) (*inference.Engine, error) {
	if hedge == "" {
		return e, nil
	}
	h, ok := membership.ParseHedge(hedge)
	if !ok {
		return nil, fmt.Errorf("unknown hedge %q (want indeed or somewhat)", hedge)
	}
	found := false
	for _, r := range e.Bank().Rules() {
		found = found || r.ID == ruleID
	}
	if !found {
		return nil, fmt.Errorf("--hedge-rule %d: no such rule in a bank of %d", ruleID, e.Bank().Len())
	}
	log.Debug("hedge applied", zap.String("hedge", hedge), zap.Int("rule", ruleID))
	return inference.New(
		inference.WithBank(e.Bank().WithHedge(ruleID, h)),
		inference.WithCenters(e.Centers()),
		inference.WithFuzzifier(e.Fuzzifier()),
	), nil
}

func diagnoseRemote(ctx context.Context, addr string, m fuzzify.Measurement, jsonOut bool) error {
	client, err := codec.NewClient(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	r, err := client.Diagnose(ctx, m)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(r)
	}
	fmt.Printf("Mamdani (COG):             %.3f  %s\n", r.Mamdani, riskLabel(r.Mamdani))
	fmt.Printf("Sugeno (weighted average): %.3f  %s\n", r.Sugeno, riskLabel(r.Sugeno))
	if r.Adaptive != nil {
		fmt.Printf("Adaptive (neuro-fuzzy):    %.3f  %s\n", *r.Adaptive, riskLabel(*r.Adaptive))
	}
	return nil
}

func printMemberships(engine *inference.Engine, f fuzzify.Fuzzified) {
	params := engine.Fuzzifier().Parameters()
	fmt.Println("Memberships:")
	for _, factor := range fuzzify.Factors() {
		fmt.Printf("  %-15s", factor)
		for _, cs := range params[factor] {
			fmt.Printf(" %s=%.3f", cs.Category, fuzzify.Degree(f, factor, cs.Category))
		}
		fmt.Println()
	}
	fmt.Println()
}

func printRuleStrengths(engine *inference.Engine, m fuzzify.Measurement) error {
	s, err := engine.Evaluate(m, nil)
	if err != nil {
		return err
	}
	fmt.Println("Rule strengths:")
	for i, r := range engine.Bank().Rules() {
		if s.PerRule[i] == 0 {
			continue
		}
		fmt.Printf("  %-60s %.3f\n", r, s.PerRule[i])
	}
	agg := inference.Aggregate(s)
	fmt.Printf("\nAggregated:")
	for _, c := range rulebank.Classes() {
		fmt.Printf(" %s=%.3f", c, agg[c])
	}
	fmt.Printf("\n\n")
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
