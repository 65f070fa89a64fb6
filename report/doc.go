// Package report renders evaluated series as console tables, charts, polygon
// diagrams, JSON documents and compressed archives.
//
// Reporting is a consumer of the core: renderers receive finished series and
// never feed anything back into evaluation. Publish runs a list of renderers
// and isolates their failures, so a missing output directory or a broken font
// never hides the numbers already computed.
//
//	err := report.Publish(ctx, logger, report.Input{Table: table, Detail: dense},
//		report.NewTableRenderer(os.Stdout),
//		report.NewChartRenderer("convergence.png"),
//	)
package report
