package telegram

import (
	"reflect"
	"testing"
)

func TestCallbackDataRoundTrip(t *testing.T) {
	tests := []struct {
		data   string
		action string
		params []string
	}{
		{buildCategoryCallback("linux"), actionCategory, []string{"linux"}},
		{buildCategoriesCallback(), actionCategories, []string{}},
		{buildNavCallback(navLast), actionNav, []string{"last"}},
		{buildPickCallback(2, 3), actionPick, []string{"2", "3"}},
		{buildSubmitCallback(4), actionSubmit, []string{"4"}},
		{buildNoopCallback(), actionNoop, []string{}},
	}

	for _, tt := range tests {
		cd := decodeCallback(tt.data)
		if cd.Action != tt.action {
			t.Errorf("decode(%q).Action = %q, want %q", tt.data, cd.Action, tt.action)
		}
		if !reflect.DeepEqual(cd.Params, tt.params) {
			t.Errorf("decode(%q).Params = %v, want %v", tt.data, cd.Params, tt.params)
		}
		if cd.encode() != tt.data {
			t.Errorf("encode(decode(%q)) = %q", tt.data, cd.encode())
		}
	}
}

func TestCallbackDataParam(t *testing.T) {
	cd := decodeCallback("pick:5:2")

	if got := cd.param(1); got != "2" {
		t.Fatalf("param(1) = %q, want 2", got)
	}
	if got := cd.param(2); got != "" {
		t.Fatalf("param(2) = %q, want empty", got)
	}
}

func TestCallbackDataFitsTelegramLimit(t *testing.T) {
	for _, data := range []string{
		buildCategoryCallback("security"),
		buildNavCallback(navFirst),
		buildPickCallback(250, 25),
		buildSubmitCallback(250),
	} {
		if len(data) > 64 {
			t.Errorf("callback data %q exceeds 64 bytes", data)
		}
	}
}
