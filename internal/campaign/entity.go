package campaign

import (
	"time"
)

// Entity is one row at any level: an account, campaign, ad set or ad.
type Entity struct {
	Level       Level     `json:"level" yaml:"-"`
	ID          string    `json:"id" yaml:"id"`
	ParentID    string    `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	Name        string    `json:"name" yaml:"name"`
	Status      string    `json:"status" yaml:"status"`
	Spend       float64   `json:"spend" yaml:"spend"`
	Sales       float64   `json:"sales" yaml:"sales"`
	Impressions int64     `json:"impressions" yaml:"impressions"`
	Clicks      int64     `json:"clicks" yaml:"clicks"`
	DailyBudget *float64  `json:"daily_budget,omitempty" yaml:"daily_budget,omitempty"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// Field names understood by Entity.Field.
const (
	FieldID          = "id"
	FieldParentID    = "parent_id"
	FieldName        = "name"
	FieldStatus      = "status"
	FieldSpend       = "spend"
	FieldSales       = "sales"
	FieldImpressions = "impressions"
	FieldClicks      = "clicks"
	FieldDailyBudget = "daily_budget"
	FieldROAS        = "roas"
	FieldCTR         = "ctr"
	FieldUpdatedAt   = "updated_at"
)

// Field implements sortable.Record. Derived metrics that cannot be computed
// (division by zero) and unset budgets are reported as nil.
func (e Entity) Field(name string) (any, bool) {
	switch name {
	case FieldID:
		return e.ID, true
	case FieldParentID:
		if e.ParentID == "" {
			return nil, true
		}
		return e.ParentID, true
	case FieldName:
		return e.Name, true
	case FieldStatus:
		return e.Status, true
	case FieldSpend:
		return e.Spend, true
	case FieldSales:
		return e.Sales, true
	case FieldImpressions:
		return e.Impressions, true
	case FieldClicks:
		return e.Clicks, true
	case FieldDailyBudget:
		if e.DailyBudget == nil {
			return nil, true
		}
		return *e.DailyBudget, true
	case FieldROAS:
		if v, ok := e.ROAS(); ok {
			return v, true
		}
		return nil, true
	case FieldCTR:
		if v, ok := e.CTR(); ok {
			return v, true
		}
		return nil, true
	case FieldUpdatedAt:
		if e.UpdatedAt.IsZero() {
			return nil, true
		}
		return e.UpdatedAt.UTC().Format(time.RFC3339), true
	default:
		return nil, false
	}
}

// ROAS is return on ad spend (sales / spend).
func (e Entity) ROAS() (float64, bool) {
	if e.Spend == 0 {
		return 0, false
	}
	return e.Sales / e.Spend, true
}

// CTR is the click-through rate (clicks / impressions).
func (e Entity) CTR() (float64, bool) {
	if e.Impressions == 0 {
		return 0, false
	}
	return float64(e.Clicks) / float64(e.Impressions), true
}
