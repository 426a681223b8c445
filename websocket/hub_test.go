package websocket

import "testing"

func TestClientCanSee(t *testing.T) {
	superAdmin := &Client{Role: "super_admin"}
	lkAdmin := &Client{Role: "country_admin", Country: "LK"}

	cases := []struct {
		name   string
		client *Client
		event  Event
		want   bool
	}{
		{"super admin sees any country", superAdmin, Event{Country: "IN"}, true},
		{"super admin sees global events", superAdmin, Event{}, true},
		{"country admin sees own country", lkAdmin, Event{Country: "LK"}, true},
		{"country admin blind to other countries", lkAdmin, Event{Country: "IN"}, false},
		{"country admin sees global events", lkAdmin, Event{}, true},
	}
	for _, tc := range cases {
		if got := clientCanSee(tc.client, tc.event); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}
