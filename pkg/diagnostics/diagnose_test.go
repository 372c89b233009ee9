package diagnostics

import (
	"errors"
	"strings"
	"testing"

	"github.com/calligan/netgraph/pkg/topology"
)

func TestDiagnoseService_NoIssues(t *testing.T) {
	engine, _ := newTestEngine(t)

	diag, err := engine.DiagnoseService("web_frontend", "timeout")
	if err != nil {
		t.Fatalf("DiagnoseService failed: %v", err)
	}

	if diag.Host != "app-server-1" {
		t.Errorf("Expected host app-server-1, got %s", diag.Host)
	}
	if diag.Site != "rack-1" {
		t.Errorf("Expected site rack-1, got %s", diag.Site)
	}
	if len(diag.ProblemLinks) != 0 {
		t.Errorf("Expected no problem links, got %v", diag.ProblemLinks)
	}
	if diag.Recommendation != RecommendCheckLogs {
		t.Errorf("Expected %q, got %q", RecommendCheckLogs, diag.Recommendation)
	}
}

func TestDiagnoseService_HotAdjacentLink(t *testing.T) {
	engine, store := newTestEngine(t)

	// 82% is under the degradation threshold but over the hot-link bar.
	if err := store.SetLinkUtilization("link-d2-srvb", 82); err != nil {
		t.Fatalf("SetLinkUtilization failed: %v", err)
	}

	diag, err := engine.DiagnoseService("postgresql_orders", "timeout")
	if err != nil {
		t.Fatalf("DiagnoseService failed: %v", err)
	}

	if len(diag.ProblemLinks) != 1 || diag.ProblemLinks[0].ID != "link-d2-srvb" {
		t.Errorf("Unexpected problem links: %v", diag.ProblemLinks)
	}
	if diag.ProblemLinks[0].Status != topology.StatusUp {
		t.Errorf("Expected UP status for hot link, got %s", diag.ProblemLinks[0].Status)
	}
	if diag.Recommendation != RecommendCheckLinks {
		t.Errorf("Expected %q, got %q", RecommendCheckLinks, diag.Recommendation)
	}
}

func TestDiagnoseService_ImpairedAdjacentLink(t *testing.T) {
	engine, store := newTestEngine(t)

	if err := store.SetLinkStatus("link-d2-srvb", topology.StatusDegraded); err != nil {
		t.Fatalf("SetLinkStatus failed: %v", err)
	}

	diag, err := engine.DiagnoseService("postgresql_orders", "timeout")
	if err != nil {
		t.Fatalf("DiagnoseService failed: %v", err)
	}

	if len(diag.ProblemLinks) != 1 || diag.ProblemLinks[0].Status != topology.StatusDegraded {
		t.Errorf("Unexpected problem links: %v", diag.ProblemLinks)
	}
}

func TestDiagnoseService_IgnoresRemoteProblems(t *testing.T) {
	engine, store := newTestEngine(t)

	// A problem two hops away is not adjacent to the host.
	if err := store.SetLinkStatus("link-core-agg2", topology.StatusDegraded); err != nil {
		t.Fatalf("SetLinkStatus failed: %v", err)
	}

	diag, err := engine.DiagnoseService("postgresql_orders", "timeout")
	if err != nil {
		t.Fatalf("DiagnoseService failed: %v", err)
	}
	if len(diag.ProblemLinks) != 0 {
		t.Errorf("Expected no adjacent problems, got %v", diag.ProblemLinks)
	}
}

func TestDiagnoseService_CriticalTag(t *testing.T) {
	engine, _ := newTestEngine(t)

	diag, err := engine.DiagnoseService("postgresql_orders", "timeout")
	if err != nil {
		t.Fatalf("DiagnoseService failed: %v", err)
	}

	line := diag.String()
	if !strings.HasPrefix(line, "postgresql_orders [CRITICAL] on db-server-1 (rack-2)") {
		t.Errorf("Unexpected diagnosis line: %s", line)
	}
}

func TestDiagnoseService_UnknownService(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.DiagnoseService("nonexistent_service", "timeout")
	if !errors.Is(err, topology.ErrServiceNotFound) {
		t.Errorf("Expected ErrServiceNotFound, got %v", err)
	}
}
