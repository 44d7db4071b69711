// Package dataprocessing reconciles the crew pairing roster with standby
// activations.
//
// # Architecture
//
// The package is organized into four stages:
//
// 1. TimeNormalizer: resolves one canonical timestamp per roster record through an ordered chain of strategies
// 2. RosterAggregator: filters, deduplicates and counts pairing starts per (date, station, duty window, rank)
// 3. StandbyAggregator: enriches activations from the headcount table and counts them per the same key
// 4. Reconciler: left-joins the two aggregates with zero fill, applies the report window and sorts
//
// Pipeline wires the stages together, running both aggregations concurrently.
//
// # Usage
//
//	pipeline := dataprocessing.NewPipeline(logger, cfg.Report)
//	report, err := pipeline.Run(ctx, dataprocessing.Inputs{
//	    Roster:    roster,
//	    Headcount: headcount,
//	    Standby:   standby,
//	})
//
// # Data Flow
//
//	Roster    → normalize → filter → dedup → group ─┐
//	                                                 ├→ left join → date filter → sort → Report
//	Standby + Headcount → enrich → group ───────────┘
//
// # Error Handling
//
// Rows with unparsable timestamps, unknown crew or no derivable rank are
// dropped and counted in domain.Diagnostics. Run only fails on an invalid
// report configuration or a cancelled context.
package dataprocessing
