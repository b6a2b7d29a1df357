package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCard_JSONContract(t *testing.T) {
	card := NewCard("eng", 90)
	card.Name = "Olivia Wilson"

	data, err := json.Marshal(card)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	for _, key := range []string{
		`"language_detected":"eng"`,
		`"osd_rotation":90`,
		`"name":"Olivia Wilson"`,
		`"designation":""`,
		`"company":""`,
		`"email":""`,
		`"mobile":""`,
		`"website":""`,
		`"address":""`,
		`"lines":[]`,
		`"confidence":0`,
	} {
		if !strings.Contains(out, key) {
			t.Errorf("JSON missing %s in %s", key, out)
		}
	}
	if strings.Contains(out, "null") {
		t.Errorf("JSON must not contain null: %s", out)
	}
}
