package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/studytrack/tutor/internal/llm"
	"github.com/studytrack/tutor/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect and test the study coach's LLM usage",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		return withHistory(cmd, func(ctx context.Context, svc *services) error {
			events, err := svc.history.RecentLLMEvents(ctx, purpose, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No LLM events found.")
				return nil
			}

			fmt.Fprintf(out, "%-5s  %-19s  %-8s  %-28s  %-6s  %-6s  %-7s  %s\n",
				"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
			fmt.Fprintln(out, strings.Repeat("─", 96))

			for _, e := range events {
				ok := "✓"
				if !e.Success {
					ok = "✗ " + e.ErrorMessage
				}
				fmt.Fprintf(out, "%-5d  %-19s  %-8s  %-28s  %-6d  %-6d  %-7d  %s\n",
					e.ID,
					e.Timestamp.Local().Format("2006-01-02 15:04:05"),
					e.Purpose,
					truncate(e.Model, 28),
					e.InputTokens,
					e.OutputTokens,
					e.LatencyMs,
					ok,
				)
			}
			return nil
		})
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(ctx context.Context, svc *services) error {
			usage, err := svc.history.LLMUsageByPurpose(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(usage) == 0 {
				fmt.Fprintln(out, "No LLM usage recorded yet.")
				return nil
			}

			fmt.Fprintln(out, "Usage by Purpose")
			fmt.Fprintln(out, strings.Repeat("─", 72))
			fmt.Fprintf(out, "%-16s  %6s  %6s  %10s  %10s  %8s\n",
				"Purpose", "Calls", "Failed", "Input", "Output", "Avg Ms")
			fmt.Fprintln(out, strings.Repeat("─", 72))
			for _, u := range usage {
				fmt.Fprintf(out, "%-16s  %6d  %6d  %10d  %10d  %8d\n",
					u.Purpose, u.Calls, u.Failures, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
			}

			events, err := svc.history.RecentLLMEvents(ctx, "", 0)
			if err != nil {
				return err
			}
			writeCosts(cmd, events)
			return nil
		})
	},
}

var llmPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Send a tiny structured request to check the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(ctx context.Context, svc *services) error {
			cfg := svc.cfg.LLM.Resolve()
			if !cfg.Enabled() {
				return fmt.Errorf("no LLM provider configured (set --llm-provider or TUTOR_LLM_PROVIDER)")
			}
			p, err := llm.NewProvider(ctx, cfg, svc.history.EventRepo(), svc.log.Named("llm"))
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(llm.WithPurpose(ctx, llm.PurposePing), cfg.Timeout)
			defer cancel()

			start := time.Now()
			resp, err := p.Generate(ctx, llm.Request{
				System:    "Reply with the requested JSON only.",
				Messages:  []llm.Message{{Role: llm.RoleUser, Content: `Reply with {"ok": true}.`}},
				Schema:    pingSchema,
				MaxTokens: 32,
			})
			if err != nil {
				return fmt.Errorf("ping %s: %w", cfg.Provider, err)
			}

			var body struct {
				OK bool `json:"ok"`
			}
			if err := json.Unmarshal(resp.Content, &body); err != nil {
				return fmt.Errorf("ping %s: decode: %w", cfg.Provider, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s responded in %s (ok=%v, %d in / %d out tokens)\n",
				cfg.Provider, cfg.Model, time.Since(start).Round(time.Millisecond),
				body.OK, resp.Usage.InputTokens, resp.Usage.OutputTokens)
			return nil
		})
	},
}

var pingSchema = &llm.Schema{
	Name:        "ping",
	Description: "Connectivity check",
	Definition: map[string]any{
		"type":                 "object",
		"properties":           map[string]any{"ok": map[string]any{"type": "boolean"}},
		"required":             []any{"ok"},
		"additionalProperties": false,
	},
}

// writeCosts prints estimated spend per model.
func writeCosts(cmd *cobra.Command, events []store.LLMEvent) {
	type modelUsage struct {
		calls, in, out int
	}
	byModel := map[string]*modelUsage{}
	for _, e := range events {
		u, ok := byModel[e.Model]
		if !ok {
			u = &modelUsage{}
			byModel[e.Model] = u
		}
		u.calls++
		u.in += e.InputTokens
		u.out += e.OutputTokens
	}
	models := make([]string, 0, len(byModel))
	for m := range byModel {
		models = append(models, m)
	}
	sort.Strings(models)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Estimated Cost (USD)")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(out, strings.Repeat("─", 72))

	var total float64
	var unknown []string
	for _, m := range models {
		u := byModel[m]
		cost := llm.LookupCost(m)
		if cost == nil {
			unknown = append(unknown, m)
			fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n", truncate(m, 32), u.calls, u.in, u.out, "?")
			continue
		}
		c := cost.Cost(u.in, u.out)
		total += c
		fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n", truncate(m, 32), u.calls, u.in, u.out, formatCost(c))
	}

	fmt.Fprintln(out, strings.Repeat("─", 72))
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(total))
	if len(unknown) > 0 {
		fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (coach or ping)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
	llmCmd.AddCommand(llmPingCmd)
}
