// Package common provides shared types and utilities for UI features.
package common

import "github.com/leapstack-labs/adboard/internal/campaign"

// NavItem is one entry of the level tabs at the top of every page.
type NavItem struct {
	Level  campaign.Level
	Title  string
	Href   string
	Active bool
}

// NavData holds the data needed to render the page shell.
type NavData struct {
	Items    []NavItem
	Level    campaign.Level
	ParentID string
	// UpHref links to the parent level, empty at the top.
	UpHref   string
	EditMode bool
}

// BuildNav builds the shell data for level. The tab of the current level is
// marked active; tabs below it are only reachable through a parent row.
func BuildNav(level campaign.Level, parentID string, editMode bool) NavData {
	nav := NavData{Level: level, ParentID: parentID, EditMode: editMode}
	for _, lv := range campaign.Levels {
		nav.Items = append(nav.Items, NavItem{
			Level:  lv,
			Title:  lv.Title(),
			Href:   "/" + string(lv),
			Active: lv == level,
		})
	}
	if parent := level.Parent(); parent != "" {
		nav.UpHref = "/" + string(parent)
	}
	return nav
}
