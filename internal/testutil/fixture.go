package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleFixture is a small account hierarchy used across tests.
const SampleFixture = `
accounts:
  - id: acc-1
    name: Main store
    status: active
    spend: 120
    sales: 480
    impressions: 10000
    clicks: 300
campaigns:
  - id: cmp-1
    parent_id: acc-1
    name: Spring sale
    status: active
    spend: 50
    sales: 300
    impressions: 4000
    clicks: 120
    daily_budget: 20
  - id: cmp-2
    parent_id: acc-1
    name: brand search
    status: paused
    spend: 70
    sales: 180
    impressions: 6000
    clicks: 180
  - id: cmp-3
    parent_id: acc-1
    name: Awareness
    status: active
    spend: 0
    sales: 0
adsets:
  - id: set-1
    parent_id: cmp-1
    name: Lookalike
    status: active
    spend: 50
    sales: 300
ads:
  - id: ad-1
    parent_id: set-1
    name: Video A
    status: active
    spend: 30
    sales: 200
  - id: ad-2
    parent_id: set-1
    name: Carousel B
    status: active
    spend: 20
    sales: 100
`

// WriteFixture writes content to a temporary YAML file and returns its path.
func WriteFixture(t testing.TB, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}
