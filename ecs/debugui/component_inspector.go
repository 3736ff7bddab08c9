package debugui

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/arcade/ecs"
)

// ComponentInspector shows and edits the components of the entity selected
// in an EntityBrowser, followed by every singleton.
type ComponentInspector struct {
	storage *ecs.Storage
	browser *EntityBrowser
}

func NewComponentInspector(storage *ecs.Storage, browser *EntityBrowser) *ComponentInspector {
	return &ComponentInspector{storage: storage, browser: browser}
}

// Components returns pointers to every component of id in archetype order,
// or nil if the entity does not exist.
func (ci *ComponentInspector) Components(id ecs.EntityId) []any {
	archetype := ci.storage.Archetype(id.ArchetypeId())
	if archetype == nil {
		return nil
	}

	var out []any
	for _, t := range archetype.Types() {
		if c := ci.storage.GetComponent(id, t); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// SetField writes value into the field of component reached by following
// the field indices in path. component must be a pointer.
func SetField(component any, path []int, value any) error {
	v := reflect.ValueOf(component)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("component %T is not a pointer", component)
	}
	v = v.Elem()

	for _, i := range path {
		if v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return fmt.Errorf("nil %s on field path", v.Type())
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct || i < 0 || i >= v.NumField() {
			return fmt.Errorf("no field %d in %s", i, v.Type())
		}
		v = v.Field(i)
	}
	return assign(v, value)
}

func (ci *ComponentInspector) Item() ImguiItem {
	return ImguiItem{Render: ci.Render}
}

// Render draws the inspector window.
func (ci *ComponentInspector) Render() {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if id, ok := ci.browser.Selected(); ok {
		imgui.Text(fmt.Sprintf("Entity ID: %d", id))
		imgui.Text(fmt.Sprintf("Archetype: 0x%X", id.ArchetypeId()))
		imgui.Separator()
		for _, c := range ci.Components(id) {
			renderComponent(c)
		}
	} else {
		imgui.Text("No entity selected")
	}

	imgui.Separator()
	if imgui.TreeNodeStr("Singletons") {
		for _, s := range ci.storage.Singletons() {
			renderComponent(s)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func renderComponent(component any) {
	val := reflect.ValueOf(component).Elem()
	if !imgui.TreeNodeStr(val.Type().String()) {
		return
	}
	defer imgui.TreePop()

	fields := componentFields.get(val.Type())
	if len(fields) == 0 {
		imgui.Text(fmt.Sprintf("%v", val.Interface()))
		return
	}
	for _, f := range fields {
		renderField(component, []int{f.Index}, f, val.Field(f.Index))
	}
}

func renderField(component any, path []int, field FieldInfo, val reflect.Value) {
	name := field.Name
	id := fmt.Sprintf("##%s%v", name, path)

	if field.IsPointer {
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
			return
		}
		val = val.Elem()
	}

	update := func(v any) {
		if err := SetField(component, path, v); err != nil {
			imgui.Text(err.Error())
		}
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) {
			update(v)
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		v := int32(val.Uint())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && v >= 0 {
			update(v)
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) {
			update(v)
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			update(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) {
			update(v)
		}

	case reflect.Struct:
		nestedFields := componentFields.get(val.Type())
		if len(nestedFields) == 0 {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
			return
		}
		if imgui.TreeNodeStr(name) {
			for _, nested := range nestedFields {
				renderField(component, append(slices.Clone(path), nested.Index), nested, val.Field(nested.Index))
			}
			imgui.TreePop()
		}

	case reflect.Slice, reflect.Map:
		imgui.Text(fmt.Sprintf("%s: %s[%d items]", name, val.Kind(), val.Len()))

	default:
		// 64-bit unsigned values such as packed tetromino bits do not fit InputInt.
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
