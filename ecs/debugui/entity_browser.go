package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/arcade/ecs"
)

// Sort columns of the entity table.
const (
	SortByID = iota
	SortByArchetype
	SortByComponents
	SortByCount
)

type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

// EntityBrowser lists live entities with their archetype and components.
// The listing is rebuilt when the entity or archetype count changes.
type EntityBrowser struct {
	storage  *ecs.Storage
	entities []EntityInfo

	lastCount          int
	lastArchetypeCount int
	built              bool

	sortColumn    int
	sortAscending bool
	filterText    string
	perPage       int
	page          int

	selected *ecs.EntityRef
}

func NewEntityBrowser(storage *ecs.Storage, perPage int) *EntityBrowser {
	return &EntityBrowser{
		storage:       storage,
		sortAscending: true,
		perPage:       max(perPage, 1),
	}
}

// Refresh rebuilds the listing if the world changed shape since the last call.
func (eb *EntityBrowser) Refresh() {
	count, archetypes := eb.storage.Count(), len(eb.storage.Archetypes())
	if eb.built && count == eb.lastCount && archetypes == eb.lastArchetypeCount {
		return
	}
	eb.lastCount, eb.lastArchetypeCount, eb.built = count, archetypes, true

	eb.entities = eb.entities[:0]
	for _, archetype := range eb.storage.Archetypes() {
		names := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			names[i] = t.String()
		}
		for id := range archetype.Iter() {
			eb.entities = append(eb.entities, EntityInfo{
				ID:             id,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: names,
			})
		}
	}
	eb.sort()
}

// SortBy orders the listing by one of the Sort* columns.
func (eb *EntityBrowser) SortBy(column int, ascending bool) {
	eb.sortColumn, eb.sortAscending = column, ascending
	eb.sort()
}

func (eb *EntityBrowser) sort() {
	slices.SortStableFunc(eb.entities, func(a, b EntityInfo) int {
		var c int
		switch eb.sortColumn {
		case SortByArchetype:
			c = cmp.Compare(a.ArchetypeID, b.ArchetypeID)
		case SortByComponents:
			c = strings.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		case SortByCount:
			c = cmp.Compare(len(a.ComponentTypes), len(b.ComponentTypes))
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if !eb.sortAscending {
			return -c
		}
		return c
	})
}

// SetFilter keeps only entities whose id, archetype or component names
// contain text, ignoring case.
func (eb *EntityBrowser) SetFilter(text string) {
	eb.filterText = text
	eb.page = 0
}

// Entities returns the sorted listing after filtering.
func (eb *EntityBrowser) Entities() []EntityInfo {
	if eb.filterText == "" {
		return eb.entities
	}

	filter := strings.ToLower(eb.filterText)
	filtered := make([]EntityInfo, 0, len(eb.entities))
	for _, e := range eb.entities {
		if strings.Contains(strconv.FormatUint(uint64(e.ID), 10), filter) ||
			strings.Contains(fmt.Sprintf("0x%x", e.ArchetypeID), filter) ||
			strings.Contains(strings.ToLower(strings.Join(e.ComponentTypes, " ")), filter) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Select makes id the entity shown by the component inspector.
func (eb *EntityBrowser) Select(id ecs.EntityId) {
	eb.selected = eb.storage.CreateEntityRef(id)
}

// Selected returns the selected entity. It reports false once the entity
// has been deleted, even if its slot was reused.
func (eb *EntityBrowser) Selected() (ecs.EntityId, bool) {
	return eb.storage.ResolveEntityRef(eb.selected)
}

func (eb *EntityBrowser) Item() ImguiItem {
	return ImguiItem{Render: eb.Render}
}

// Render draws the browser window.
func (eb *EntityBrowser) Render() {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.Refresh()

	filter := eb.filterText
	if imgui.InputTextWithHint("##search", "Search...", &filter, imgui.InputTextFlagsNone, nil) {
		eb.SetFilter(filter)
	}
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.SetFilter("")
	}

	entities := eb.Entities()
	selected, _ := eb.Selected()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		start := min(eb.page*eb.perPage, len(entities))
		end := min(start+eb.perPage, len(entities))
		for _, e := range entities[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(strconv.FormatUint(uint64(e.ID), 10), e.ID == selected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.Select(e.ID)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", e.ArchetypeID))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(e.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(strconv.Itoa(len(e.ComponentTypes)))
		}

		imgui.EndTable()
	}

	if len(entities) > eb.perPage {
		pages := (len(entities) + eb.perPage - 1) / eb.perPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.page+1, pages, len(entities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.page > 0 {
			eb.page--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.page < pages-1 {
			eb.page++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(entities)))
	}

	imgui.End()
}
