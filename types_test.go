package rgbim

import "testing"

func TestPlanFromRole(t *testing.T) {
	cases := []struct {
		role string
		want Plan
	}{
		{"Premium", PlanPremium},
		{"Admin", PlanAdmin},
		{"Comum", PlanFree},
		{"", PlanFree},
		{"premium", PlanFree}, // role matching is case-sensitive
		{"Moderator", PlanFree},
	}

	for _, tc := range cases {
		if got := PlanFromRole(tc.role); got != tc.want {
			t.Errorf("PlanFromRole(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}

func TestSessionInfoState(t *testing.T) {
	cases := []struct {
		name string
		info SessionInfo
		want State
	}{
		{"loading", SessionInfo{Loading: true}, StateLoading},
		{"loading with user", SessionInfo{Loading: true, User: &User{}}, StateLoading},
		{"anonymous", SessionInfo{}, StateAnonymous},
		{"authenticated", SessionInfo{User: &User{ID: "u-1"}}, StateAuthenticated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.info.State(); got != tc.want {
				t.Fatalf("State() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTokenPairValid(t *testing.T) {
	if (TokenPair{}).Valid() {
		t.Error("empty pair reported valid")
	}
	if (TokenPair{AccessToken: "a"}).Valid() {
		t.Error("half pair reported valid")
	}
	if !(TokenPair{AccessToken: "a", RefreshToken: "r"}).Valid() {
		t.Error("full pair reported invalid")
	}
}

func TestStateString(t *testing.T) {
	for state, want := range map[State]string{
		StateLoading:       "loading",
		StateAnonymous:     "anonymous",
		StateAuthenticated: "authenticated",
		State(42):          "unknown",
	} {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
