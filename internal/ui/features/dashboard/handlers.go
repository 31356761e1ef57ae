package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/adboard/internal/campaign"
	"github.com/leapstack-labs/adboard/internal/prefs"
	"github.com/leapstack-labs/adboard/internal/source"
	"github.com/leapstack-labs/adboard/internal/ui/features/common"
	"github.com/leapstack-labs/adboard/internal/ui/notifier"
	"github.com/leapstack-labs/adboard/internal/ui/resources"
	"github.com/leapstack-labs/adboard/pkg/sortable"
	"github.com/starfederation/datastar-go/datastar"
)

// Handlers provides HTTP handlers for the entity tables.
type Handlers struct {
	source   source.Source
	profiles *common.Profiles
	notifier *notifier.Notifier
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
// If logger is nil, a discard logger is used.
func NewHandlers(src source.Source, profiles *common.Profiles, notify *notifier.Notifier, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		source:   src,
		profiles: profiles,
		notifier: notify,
		logger:   logger,
	}
}

// Root redirects to the top level.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/"+string(campaign.LevelAccounts), http.StatusFound)
}

// LevelPage renders the full page of one level.
func (h *Handlers) LevelPage(w http.ResponseWriter, r *http.Request) {
	level, err := campaign.ParseLevel(chi.URLParam(r, "level"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	p, err := h.profiles.Resolve(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	parentID := r.URL.Query().Get("parent")

	view, err := h.buildTable(r.Context(), p, level, parentID, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	signals, err := json.Marshal(FilterSignals{Status: p.Filter().Status, Search: p.Filter().Search})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	page := PageView{
		Title:      level.Title(),
		Nav:        common.BuildNav(level, parentID, p.EditMode()),
		Table:      view,
		UpdatesURL: levelURL("/api/updates", level, parentID),
		Stylesheet: resources.StaticPath("dashboard.css"),
		Signals:    template.JS(signals), //nolint:gosec // marshalled JSON
	}
	if err := Page(page).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// TableSSE patches the current table.
func (h *Handlers) TableSSE(w http.ResponseWriter, r *http.Request) {
	h.withTable(w, r, nil)
}

// SortSSE handles a click on a column header: the column advances through
// ascending, descending and unsorted.
func (h *Handlers) SortSSE(w http.ResponseWriter, r *http.Request) {
	column := chi.URLParam(r, "column")
	h.withTable(w, r, func(ctx context.Context, p *prefs.Preferences, level campaign.Level, tbl *sortable.Table[campaign.Entity]) error {
		if !campaign.HasColumn(level, column) {
			return fmt.Errorf("unknown column %q for %s", column, level)
		}
		next, err := p.AdvanceSort(ctx, level, column)
		if err != nil {
			return err
		}
		tbl.SetConfig(next)
		h.logger.Debug("sort changed",
			slog.String("level", string(level)),
			slog.String("column", column),
			slog.String("direction", tbl.Direction(column).String()))
		return nil
	})
}

// ResetSSE drops the column sort of a level.
func (h *Handlers) ResetSSE(w http.ResponseWriter, r *http.Request) {
	h.withTable(w, r, func(ctx context.Context, p *prefs.Preferences, level campaign.Level, tbl *sortable.Table[campaign.Entity]) error {
		tbl.Reset()
		return p.SetSort(ctx, level, tbl.Config())
	})
}

// FilterSSE applies the filter signals.
func (h *Handlers) FilterSSE(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals FilterSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(fmt.Errorf("failed to read signals: %w", err))
		return
	}
	h.withTable(w, r, func(ctx context.Context, p *prefs.Preferences, _ campaign.Level, _ *sortable.Table[campaign.Entity]) error {
		return p.SetFilter(ctx, campaign.Filter{
			Status: strings.TrimSpace(signals.Status),
			Search: strings.TrimSpace(signals.Search),
		})
	})
}

// EditModeSSE toggles edit mode, patches the table of the calling page
// (given by the level and parent query) and tells the profile's other pages.
func (h *Handlers) EditModeSSE(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var level campaign.Level
	var levelErr error
	if raw := query.Get("level"); raw != "" {
		level, levelErr = campaign.ParseLevel(raw)
	}
	p, err := h.profiles.Resolve(w, r)
	sse := datastar.NewSSE(w, r)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if levelErr != nil {
		_ = sse.ConsoleError(levelErr)
		return
	}
	on, err := p.ToggleEditMode(r.Context())
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	h.logger.Debug("edit mode toggled", slog.String("profile", p.Profile()), slog.Bool("on", on))
	h.notifier.Broadcast(notifier.Event{Reason: "edit mode", Profile: p.Profile()})

	if level == "" {
		return
	}
	view, err := h.buildTable(r.Context(), p, level, query.Get("parent"), nil)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(Table(view)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Updates is the long-lived SSE endpoint of a level page. The page is
// already rendered by LevelPage; this only pushes later changes.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	level, err := campaign.ParseLevel(r.URL.Query().Get("level"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	parentID := r.URL.Query().Get("parent")
	p, err := h.profiles.Resolve(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-updates:
			if !ev.Affects(p.Profile()) {
				continue
			}
			view, err := h.buildTable(ctx, p, level, parentID, nil)
			if err != nil {
				_ = sse.ConsoleError(err)
				continue
			}
			if err := sse.PatchElementTempl(Table(view)); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

type tableChange func(ctx context.Context, p *prefs.Preferences, level campaign.Level, tbl *sortable.Table[campaign.Entity]) error

// withTable resolves the level and profile of r, applies change and patches
// the resulting table.
func (h *Handlers) withTable(w http.ResponseWriter, r *http.Request, change tableChange) {
	level, levelErr := campaign.ParseLevel(chi.URLParam(r, "level"))
	p, profileErr := h.profiles.Resolve(w, r)

	sse := datastar.NewSSE(w, r)
	if levelErr != nil {
		_ = sse.ConsoleError(levelErr)
		return
	}
	if profileErr != nil {
		_ = sse.ConsoleError(profileErr)
		return
	}

	view, err := h.buildTable(r.Context(), p, level, r.URL.Query().Get("parent"), change)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(Table(view)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// buildTable fetches a level, applies change to its sort table and builds the
// view model.
func (h *Handlers) buildTable(ctx context.Context, p *prefs.Preferences, level campaign.Level, parentID string, change tableChange) (TableView, error) {
	tbl := sortable.NewTable[campaign.Entity](nil)
	tbl.SetConfig(p.Sort(level))

	if change != nil {
		if err := change(ctx, p, level, tbl); err != nil {
			return TableView{}, err
		}
	}

	entities, err := h.source.List(ctx, level, parentID)
	if err != nil {
		return TableView{}, fmt.Errorf("failed to list %s: %w", level, err)
	}
	rows := campaign.Arrange(level, entities, p.Filter(), tbl)
	return buildTableView(level, parentID, rows, tbl, p.EditMode()), nil
}

func buildTableView(level campaign.Level, parentID string, rows []campaign.Entity, tbl *sortable.Table[campaign.Entity], editMode bool) TableView {
	cols := campaign.Columns(level)
	view := TableView{
		Level:          level,
		Title:          level.Title(),
		ParentID:       parentID,
		Count:          len(rows),
		EditMode:       editMode,
		ResetAction:    action(string(level)+"/sort/reset", parentID),
		FilterAction:   action(string(level)+"/filter", parentID),
		EditModeAction: template.JS("@post('" + levelURL("/api/settings/edit-mode", level, parentID) + "')"), //nolint:gosec // query is escaped
	}

	for _, c := range cols {
		dir := tbl.Direction(c.Field)
		view.Headers = append(view.Headers, HeaderView{
			Field:     c.Field,
			Label:     c.Label,
			Numeric:   c.Numeric,
			Indicator: common.SortIndicator(dir),
			AriaSort:  common.AriaSort(dir),
			Action:    action(string(level)+"/sort/"+url.PathEscape(c.Field), parentID),
		})
		if dir.Active() {
			view.SortLabel = c.Label + " (" + dir.String() + ")"
		}
	}

	child := level.Child()
	for _, e := range rows {
		row := RowView{ID: e.ID, Status: e.Status, Cells: cells(e, cols)}
		if child != "" {
			row.Href = levelURL("/"+string(child), "", e.ID)
		}
		view.Rows = append(view.Rows, row)
	}
	view.Totals = cells(campaign.Totals(rows), cols)
	return view
}

func cells(e campaign.Entity, cols []campaign.Column) []CellView {
	out := make([]CellView, 0, len(cols))
	for _, c := range cols {
		out = append(out, CellView{Text: common.FormatCell(e, c.Field), Numeric: c.Numeric})
	}
	return out
}

// action builds a datastar POST expression for an /api path.
func action(path, parentID string) template.JS {
	u := "/api/" + path
	if parentID != "" {
		u += "?parent=" + url.QueryEscape(parentID)
	}
	return template.JS("@post('" + u + "')") //nolint:gosec // path and query are escaped
}

func levelURL(path string, level campaign.Level, parentID string) string {
	q := url.Values{}
	if level != "" {
		q.Set("level", string(level))
	}
	if parentID != "" {
		q.Set("parent", parentID)
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
