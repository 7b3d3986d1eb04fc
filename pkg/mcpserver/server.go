// Package mcpserver exposes the check runner to MCP clients over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"os"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vertti/qagate/pkg/report"
	"github.com/vertti/qagate/pkg/runner"
	"github.com/vertti/qagate/pkg/suite"
)

// Serve runs the MCP server on stdin/stdout until the client disconnects
// or ctx is cancelled.
func Serve(ctx context.Context, version string) error {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "qagate",
		Version: version,
	}, nil)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "run_checks",
		Description: "Run the configured quality checks and write the full transcript to the output file",
	}, runChecks)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list_checks",
		Description: "List the quality checks a run would execute, without running them",
	}, listChecks)

	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func runChecks(ctx context.Context, req *mcpsdk.CallToolRequest, input RunChecksInput) (*mcpsdk.CallToolResult, RunChecksOutput, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, RunChecksOutput{}, fmt.Errorf("get working directory: %w", err)
	}

	s, err := suite.Resolve(wd, input.ConfigPath)
	if err != nil {
		return nil, RunChecksOutput{}, err
	}

	path := input.OutputPath
	if path == "" {
		path = s.Output
	}

	r := &runner.Runner{Checks: s.Checks, Path: path}
	res, err := r.Run()
	if err != nil {
		return nil, RunChecksOutput{}, err
	}

	if s.Report != "" {
		if err := report.Write(s.Report, res); err != nil {
			return nil, RunChecksOutput{}, err
		}
	}

	out := RunChecksOutput{
		Success:        res.Success(),
		Passed:         res.Tally.Passed,
		Failed:         res.Tally.Failed,
		Missing:        res.Tally.Missing,
		Checks:         make([]CheckStatus, 0, len(res.Checks)),
		TranscriptPath: res.Output,
	}

	var text strings.Builder
	for _, cr := range res.Checks {
		status := CheckStatus{
			Name:    cr.Name,
			Command: cr.Command,
			Status:  string(cr.Status),
			Summary: cr.Summary,
		}
		if cr.Ran() {
			status.ExitCode = cr.ExitCode
		}
		out.Checks = append(out.Checks, status)
		fmt.Fprintf(&text, "[%s] %s\n", strings.ToUpper(string(cr.Status)), cr.Name)
	}
	fmt.Fprintf(&text, "%d passed, %d failed, %d missing\n", out.Passed, out.Failed, out.Missing)
	if out.Success {
		text.WriteString("All checks passed.")
	} else {
		text.WriteString("One or more checks failed.")
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: text.String()},
		},
	}, out, nil
}

func listChecks(ctx context.Context, req *mcpsdk.CallToolRequest, input ListChecksInput) (*mcpsdk.CallToolResult, ListChecksOutput, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, ListChecksOutput{}, fmt.Errorf("get working directory: %w", err)
	}

	s, err := suite.Resolve(wd, input.ConfigPath)
	if err != nil {
		return nil, ListChecksOutput{}, err
	}

	out := ListChecksOutput{Checks: make([]CheckInfo, 0, len(s.Checks))}
	var text strings.Builder
	for _, spec := range s.Checks {
		out.Checks = append(out.Checks, CheckInfo{Name: spec.Name, Command: spec.CommandLine()})
		fmt.Fprintf(&text, "%s: %s\n", spec.Name, spec.CommandLine())
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: text.String()},
		},
	}, out, nil
}
