package bot

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"testing"

	"github.com/tzrikka/teambot/pkg/slack/api"
)

const refChannel = "C7H5QAT9Q"

func surpriseSlack() *fakeSlack {
	return &fakeSlack{
		channelMembers: map[string][]string{refChannel: {"U1", "U2", "U123"}},
		users:          map[string]api.User{"U123": {ID: "U123", Name: "jdoe", DisplayName: "John Doe"}},
	}
}

func TestSurprise(t *testing.T) {
	f := surpriseSlack()
	b := New(f, firstIndex, Config{BotUserID: "UBOT", ReferenceChannel: refChannel})

	if got := b.Handle(nil, InboundMessage{Text: "surprise <@U123>", ChannelID: "D1", SenderID: "U2"}); got != Surprise {
		t.Fatalf("Handle() = %v, want %v", got, Surprise)
	}

	if want := []string{"temp_surprise-for-john-doe"}; !slices.Equal(f.created, want) {
		t.Errorf("created channels = %q, want %q", f.created, want)
	}
	if want := [][]string{{"U1", "U2"}}; !reflect.DeepEqual(f.invited, want) {
		t.Errorf("invited = %q, want %q", f.invited, want)
	}

	want := []string{
		"Created channel #temp_surprise-for-john-doe",
		"Invited everyone to #temp_surprise-for-john-doe",
	}
	if !slices.Equal(f.replies, want) {
		t.Errorf("replies = %q, want %q", f.replies, want)
	}
}

func TestSurpriseInviteFailure(t *testing.T) {
	f := surpriseSlack()
	f.existing = []bool{true, false}
	f.inviteErr = &api.APIError{Method: "conversations.invite", Code: "not_in_channel"}
	b := New(f, firstIndex, Config{ReferenceChannel: refChannel})

	b.Handle(nil, InboundMessage{Text: "surprise <@U123>", ChannelID: "D1", SenderID: "U2"})

	want := []string{
		"Created channel #temp_surprise-for-john-doe-2",
		"Failed to invite everyone to #temp_surprise-for-john-doe-2",
	}
	if !slices.Equal(f.replies, want) {
		t.Errorf("replies = %q, want %q", f.replies, want)
	}
	if len(f.created) != 1 {
		t.Errorf("created %d channels, want 1 (no rollback or retry)", len(f.created))
	}
}

func TestSurpriseAlreadyInChannel(t *testing.T) {
	f := surpriseSlack()
	f.inviteErr = &api.APIError{Method: "conversations.invite", Code: "already_in_channel"}
	b := New(f, firstIndex, Config{ReferenceChannel: refChannel})

	b.Handle(nil, InboundMessage{Text: "surprise <@U123>"})

	if got, want := f.replies[len(f.replies)-1], "Invited everyone to #temp_surprise-for-john-doe"; got != want {
		t.Errorf("last reply = %q, want %q", got, want)
	}
}

func TestSurpriseFailures(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(f *fakeSlack)
		text        string
		want        []string
		wantCreated int
	}{
		{
			name: "no_mention",
			text: "surprise john",
			want: []string{noSurpriseTargetMessage},
		},
		{
			name: "only_bot_mention",
			text: "<@UBOT> surprise",
			want: []string{noSurpriseTargetMessage},
		},
		{
			name: "user_not_found",
			text: "surprise <@U404>",
			want: []string{"I couldn't find <@U404>."},
		},
		{
			name:  "profile_transport_error",
			setup: func(f *fakeSlack) { f.profileErr = &api.TransportError{Method: "users.info", Err: errors.New("timeout")} },
			text:  "surprise <@U123>",
			want:  []string{"Sorry, something went wrong while looking up the mentioned user. Please try again later."},
		},
		{
			name:  "naming_error",
			setup: func(f *fakeSlack) { f.existsErr = &api.APIError{Method: "conversations.list", Code: "ratelimited"} },
			text:  "surprise <@U123>",
			want:  []string{namesUnavailableMessage},
		},
		{
			name: "names_exhausted",
			setup: func(f *fakeSlack) {
				for range MaxNameProbes {
					f.existing = append(f.existing, true)
				}
			},
			text: "surprise <@U123>",
			want: []string{namesUnavailableMessage},
		},
		{
			name:  "create_error",
			setup: func(f *fakeSlack) { f.createErr = &api.APIError{Method: "conversations.create", Code: "name_taken"} },
			text:  "surprise <@U123>",
			want:  []string{"Failed to create channel #temp_surprise-for-john-doe"},
		},
		{
			name: "no_invitees",
			setup: func(f *fakeSlack) {
				f.channelMembers[refChannel] = []string{"U123"}
			},
			text:        "surprise <@U123>",
			want:        []string{"Created channel #temp_surprise-for-john-doe", "There was no one else to invite to #temp_surprise-for-john-doe"},
			wantCreated: 1,
		},
		{
			name:        "reference_channel_error",
			setup:       func(f *fakeSlack) { f.listErr = errors.New("boom") },
			text:        "surprise <@U123>",
			want:        []string{"Created channel #temp_surprise-for-john-doe", "Failed to invite everyone to #temp_surprise-for-john-doe"},
			wantCreated: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := surpriseSlack()
			if tt.setup != nil {
				tt.setup(f)
			}
			b := New(f, firstIndex, Config{BotUserID: "UBOT", ReferenceChannel: refChannel})

			b.Handle(nil, InboundMessage{Text: tt.text, ChannelID: "D1", SenderID: "U2"})

			if !slices.Equal(f.replies, tt.want) {
				t.Errorf("replies = %q, want %q", f.replies, tt.want)
			}
			if len(f.created) != tt.wantCreated {
				t.Errorf("created %d channels, want %d", len(f.created), tt.wantCreated)
			}
			if tt.wantCreated == 0 && len(f.invited) > 0 {
				t.Errorf("invited = %q, want no invites", f.invited)
			}
		})
	}
}

func TestSurpriseInvitees(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "bot_kept_by_default",
			cfg:  Config{BotUserID: "UBOT", ReferenceChannel: refChannel},
			want: []string{"U1", "UBOT", "U2"},
		},
		{
			name: "bot_excluded",
			cfg:  Config{BotUserID: "UBOT", ReferenceChannel: refChannel, SurpriseExcludeBot: true},
			want: []string{"U1", "U2"},
		},
		{
			name: "workspace_fallback",
			cfg:  Config{BotUserID: "UBOT"},
			want: []string{"U1", "U3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := surpriseSlack()
			f.channelMembers[refChannel] = []string{"U1", "UBOT", "U123", "U2"}
			f.workspaceUsers = []api.User{{ID: "U1"}, {ID: "U123"}, {ID: "U3"}}
			b := New(f, firstIndex, tt.cfg)

			b.Handle(nil, InboundMessage{Text: "surprise <@U123>"})

			if want := [][]string{tt.want}; !reflect.DeepEqual(f.invited, want) {
				t.Errorf("invited = %q, want %q", f.invited, want)
			}
		})
	}
}

func TestSurpriseBatches(t *testing.T) {
	members := make([]string, 0, api.MaxInviteBatch*2+2)
	for i := range cap(members) {
		members = append(members, fmt.Sprintf("U%d", i))
	}

	f := surpriseSlack()
	f.channelMembers[refChannel] = members
	b := New(f, firstIndex, Config{ReferenceChannel: refChannel})

	b.Handle(nil, InboundMessage{Text: "surprise <@U123>"})

	if len(f.invited) != 3 {
		t.Fatalf("invite calls = %d, want 3", len(f.invited))
	}
	total := 0
	for i, batch := range f.invited {
		if len(batch) > api.MaxInviteBatch {
			t.Errorf("batch %d size = %d, want <= %d", i, len(batch), api.MaxInviteBatch)
		}
		if slices.Contains(batch, "U123") {
			t.Errorf("batch %d contains the surprise target", i)
		}
		total += len(batch)
	}
	if total != len(members)-1 {
		t.Errorf("invited %d users, want %d", total, len(members)-1)
	}
}

func TestSurpriseSeedFallback(t *testing.T) {
	tests := []struct {
		name string
		user api.User
		want string
	}{
		{
			name: "display_name",
			user: api.User{ID: "U123", Name: "jdoe", RealName: "Jonathan Doe", DisplayName: "John"},
			want: "temp_surprise-for-john",
		},
		{
			name: "real_name",
			user: api.User{ID: "U123", Name: "jdoe", RealName: "Jonathan Doe"},
			want: "temp_surprise-for-jonathan-doe",
		},
		{
			name: "username",
			user: api.User{ID: "U123", Name: "jdoe"},
			want: "temp_surprise-for-jdoe",
		},
		{
			name: "user_id",
			user: api.User{ID: "U123", DisplayName: "???"},
			want: "temp_surprise-for-u123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := surpriseSlack()
			f.users["U123"] = tt.user
			b := New(f, firstIndex, Config{ReferenceChannel: refChannel})

			b.Handle(nil, InboundMessage{Text: "surprise <@U123>"})

			if want := []string{tt.want}; !slices.Equal(f.created, want) {
				t.Errorf("created channels = %q, want %q", f.created, want)
			}
		})
	}
}
