package insights

import (
	"reflect"
	"strings"
)

// ActionStat is one dimensioned slice of an action aggregate. Every
// attribute is an optional string; numeric values are not coerced.
type ActionStat struct {
	Click1D                             *string `json:"click_1d,omitempty"`
	View1D                              *string `json:"view_1d,omitempty"`
	Click28D                            *string `json:"click_28d,omitempty"`
	View28D                             *string `json:"view_28d,omitempty"`
	Click7D                             *string `json:"click_7d,omitempty"`
	View7D                              *string `json:"view_7d,omitempty"`
	ActionCanvasComponentID             *string `json:"action_canvas_component_id,omitempty"`
	ActionCanvasComponentName           *string `json:"action_canvas_component_name,omitempty"`
	ActionCarouselCardID                *string `json:"action_carousel_card_id,omitempty"`
	ActionCarouselCardName              *string `json:"action_carousel_card_name,omitempty"`
	ActionConvertedProductID            *string `json:"action_converted_product_id,omitempty"`
	ActionDestination                   *string `json:"action_destination,omitempty"`
	ActionDevice                        *string `json:"action_device,omitempty"`
	ActionEventChannel                  *string `json:"action_event_channel,omitempty"`
	ActionLinkClickDestination          *string `json:"action_link_click_destination,omitempty"`
	ActionLocationCode                  *string `json:"action_location_code,omitempty"`
	ActionReaction                      *string `json:"action_reaction,omitempty"`
	ActionTargetID                      *string `json:"action_target_id,omitempty"`
	ActionType                          *string `json:"action_type,omitempty"`
	ActionVideoAssetID                  *string `json:"action_video_asset_id,omitempty"`
	ActionVideoSound                    *string `json:"action_video_sound,omitempty"`
	ActionVideoType                     *string `json:"action_video_type,omitempty"`
	Inline                              *string `json:"inline,omitempty"`
	InteractiveComponentStickerID       *string `json:"interactive_component_sticker_id,omitempty"`
	InteractiveComponentStickerResponse *string `json:"interactive_component_sticker_response,omitempty"`
	Value                               *string `json:"value,omitempty"`
}

// actionStatIndex maps schema attribute names to struct field indices.
// actionStatOrder keeps declaration order.
var actionStatIndex, actionStatOrder = indexActionStat()

func indexActionStat() (map[string]int, []string) {
	t := reflect.TypeFor[ActionStat]()
	idx := make(map[string]int, t.NumField())
	order := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		idx[name] = i
		order = append(order, name)
	}
	return idx, order
}

// ActionStatAttributes returns the attribute names of ActionStat in
// declaration order.
func ActionStatAttributes() []string {
	out := make([]string, len(actionStatOrder))
	copy(out, actionStatOrder)
	return out
}

// IsActionStatAttribute reports whether name is a known ActionStat attribute.
func IsActionStatAttribute(name string) bool {
	_, ok := actionStatIndex[name]
	return ok
}

// Set assigns attribute name. It reports false for unknown names.
func (a *ActionStat) Set(name, value string) bool {
	i, ok := actionStatIndex[name]
	if !ok {
		return false
	}
	v := value
	reflect.ValueOf(a).Elem().Field(i).Set(reflect.ValueOf(&v))
	return true
}

// Get returns attribute name and whether it is set.
func (a *ActionStat) Get(name string) (string, bool) {
	i, ok := actionStatIndex[name]
	if !ok {
		return "", false
	}
	p := reflect.ValueOf(a).Elem().Field(i).Interface().(*string)
	if p == nil {
		return "", false
	}
	return *p, true
}

// Attributes returns the set attributes as a map.
func (a *ActionStat) Attributes() map[string]string {
	out := make(map[string]string)
	for _, name := range actionStatOrder {
		if v, ok := a.Get(name); ok {
			out[name] = v
		}
	}
	return out
}
