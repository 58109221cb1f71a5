package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"business_document_generator/charts"
	"business_document_generator/export"
	"business_document_generator/finance"
	"business_document_generator/generator"
	"business_document_generator/notes"
	"business_document_generator/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config server_addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	llm, err := buildLLM(cfg)
	if err != nil {
		return err
	}
	assembler, err := buildAssembler(llm)
	if err != nil {
		return err
	}
	taker, err := buildTaker(llm)
	if err != nil {
		return err
	}
	srv, err := server.New(server.Options{
		Assembler:       assembler,
		Exporter:        buildExporter(),
		Notes:           taker,
		Logger:          logger.Named("http"),
		GenerateTimeout: cfg.Generation.Timeout,
		MaxUploadBytes:  cfg.Notes.MaxUploadMB << 20,
	})
	if err != nil {
		return err
	}

	listen := cfg.ServerAddr
	if serveAddr != "" {
		listen = serveAddr
	}
	httpSrv := &http.Server{Addr: listen, Handler: srv.Routes(), ReadHeaderTimeout: 10 * time.Second}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	logger.Info("starting web server", zap.String("addr", listen), zap.String("provider", cfg.LLM.Provider))
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

var (
	genType   string
	genFields string
	genFormat string
	genOut    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a document from a YAML field file",
	Long: `Generate runs every section of the chosen document type through the model
and writes the result as docx, pdf or plain text.

The fields file uses the same keys as the web form, e.g.

  document_type: Business Plan
  directors: Jane Doe
  funding_amount: R 1,000,000
  business_overview: A solar installation company in Durban.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genType, "type", "", "document type (overrides the fields file)")
	generateCmd.Flags().StringVar(&genFields, "fields", "", "path to a YAML field file (required)")
	generateCmd.Flags().StringVar(&genFormat, "format", "docx", "output format: docx, pdf or txt")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "output path (default <Document_Type>.<format>)")
	_ = generateCmd.MarkFlagRequired("fields")
}

func loadFields(path, typeOverride string) (generator.FieldSet, error) {
	var f generator.FieldSet
	data, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse %s: %w", path, err)
	}
	if typeOverride != "" {
		t, err := generator.ParseDocumentType(typeOverride)
		if err != nil {
			return f, err
		}
		f.Type = t
	}
	return f, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	fields, err := loadFields(genFields, genType)
	if err != nil {
		return err
	}
	llm, err := buildLLM(cfg)
	if err != nil {
		return err
	}
	assembler, err := buildAssembler(llm)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Generation.Timeout)
	defer cancel()
	doc, err := assembler.Assemble(ctx, fields)
	if err != nil {
		return fmt.Errorf("An error occurred: %w", err)
	}

	var body []byte
	ext := genFormat
	if genFormat == "txt" {
		body = []byte(doc.Text)
	} else {
		format, err := export.ParseFormat(genFormat)
		if err != nil {
			return err
		}
		ext = string(format)
		body, err = buildExporter().Export(format, doc.Text, doc.Charts)
		if err != nil {
			return err
		}
	}

	out := genOut
	if out == "" {
		out = doc.Fields.Type.FileBase() + "." + ext
	}
	if err := os.WriteFile(out, body, 0o644); err != nil {
		return err
	}
	logger.Info("document written", zap.String("path", out), zap.Int("charts", len(doc.Charts)))
	fmt.Println(out)
	return nil
}

var (
	finInputs   finance.Inputs
	finJSON     bool
	finChartDir string
)

var financeCmd = &cobra.Command{
	Use:   "finance",
	Short: "Run the financial model on the given figures",
	RunE:  runFinance,
}

func init() {
	f := financeCmd.Flags()
	f.StringVar(&finInputs.Scenario, "scenario", finance.BaseCase, "scenario label")
	f.Float64Var(&finInputs.Revenue, "revenue", 0, "revenue (£)")
	f.Float64Var(&finInputs.Expenses, "expenses", 0, "expenses (£)")
	f.Float64Var(&finInputs.Assets, "assets", 0, "assets (£)")
	f.Float64Var(&finInputs.Liabilities, "liabilities", 0, "liabilities (£)")
	f.Float64Var(&finInputs.Equity, "equity", 0, "equity (£)")
	f.BoolVar(&finJSON, "json", false, "print the analysis as JSON")
	f.StringVar(&finChartDir, "chart-dir", "", "also write the two charts as PNG into this directory")
}

func runFinance(cmd *cobra.Command, args []string) error {
	a, err := finance.Analyze(finInputs)
	if err != nil {
		return err
	}
	if finChartDir != "" {
		if err := writeFinanceCharts(a, finChartDir); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	if finJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}
	fmt.Fprintf(w, "Scenario: %s\n", a.Inputs.Scenario)
	fmt.Fprintf(w, "Profit: %.2f  Net assets: %.2f  Equity: %.2f\n", a.Statements.Profit, a.Statements.NetAssets, a.Statements.Equity)
	fmt.Fprintf(w, "Current ratio: %.2f  Debt to equity: %.2f  Profit margin: %.2f\n",
		float64(a.Ratios.CurrentRatio), float64(a.Ratios.DebtToEquity), float64(a.Ratios.ProfitMargin))
	fmt.Fprintf(w, "ROA: %.2f  ROE: %.2f  Leverage: %.2f  Asset turnover: %.2f\n",
		float64(a.Ratios.ReturnOnAssets), float64(a.Ratios.ReturnOnEquity),
		float64(a.Advanced.FinancialLeverage), float64(a.Advanced.AssetTurnover))
	for _, line := range a.Interpretation {
		fmt.Fprintln(w, "- "+line)
	}
	return nil
}

func writeFinanceCharts(a finance.Analysis, dir string) error {
	r := charts.NewRenderer()
	for _, name := range []string{finance.ChartRevenueExpenses, finance.ChartScenario} {
		p, _, err := finance.Figure(a, name)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, name+".png")
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := r.Encode(f, p); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		logger.Debug("chart written", zap.String("path", path))
	}
	return nil
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the illustrative financial tables as Markdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), finance.FinancialTables().Markdown())
		return err
	},
}

var (
	notesAudio string
	notesOut   string
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Transcribe and summarize a meeting recording",
	RunE:  runNotes,
}

func init() {
	notesCmd.Flags().StringVar(&notesAudio, "audio", "", "mp3, wav or m4a recording (required)")
	notesCmd.Flags().StringVarP(&notesOut, "out", "o", notes.SummaryFileName, "summary output path")
	_ = notesCmd.MarkFlagRequired("audio")
}

func runNotes(cmd *cobra.Command, args []string) error {
	if err := notes.CheckAudio(notesAudio); err != nil {
		return err
	}
	llm, err := buildLLM(cfg)
	if err != nil {
		return err
	}
	taker, err := buildTaker(llm)
	if err != nil {
		return err
	}
	f, err := os.Open(notesAudio)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Generation.Timeout)
	defer cancel()
	n, err := taker.Process(ctx, filepath.Base(notesAudio), f)
	if err != nil {
		return fmt.Errorf("An error occurred: %w", err)
	}
	if err := os.WriteFile(notesOut, []byte(n.Summary), 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), n.Summary)
	logger.Info("summary written", zap.String("path", notesOut))
	return nil
}
