package bot

import (
	"fmt"
	"strings"
)

const (
	unknownCommandMessage = "Sorry, I don't understand. Please type `help` or `commands` to see what I can do."

	noSurpriseTargetMessage = "Please mention a user you want to skip in the new channel."
	namesUnavailableMessage = "Sorry, I couldn't check which channel names are available right now."
	userNotFoundMessage     = "I couldn't find <@%s>."

	channelCreatedMessage      = "Created channel #%s"
	channelCreateFailedMessage = "Failed to create channel #%s"
	invitedMessage             = "Invited everyone to #%s"
	inviteFailedMessage        = "Failed to invite everyone to #%s"
	noInviteesMessage          = "There was no one else to invite to #%s"

	pickedMessage            = "I picked <@%s>"
	noChannelMembersMessage  = "I couldn't find any members in the current channel."
	channelListFailedMessage = "I couldn't find any members in the current channel. Check this is not a private conversation."
	noSubteamMembersMessage  = "I couldn't find any members in the `%s` subteam."
	badSubteamMessage        = "I couldn't find any members in the mentioned group. You can use `pick` without mentioning a group to pick from the current channel."
	unknownHandleMessage     = "I couldn't find any members in the %s user group. Try using the group handle instead of the name."

	genericErrorMessage = "Sorry, something went wrong while %s. Please try again later."
)

var greetings = []string{
	"Hello!",
	"Hi there!",
	"Hey! :wave:",
	"Howdy!",
	"Greetings!",
	"Good to see you!",
	"Hello, friend!",
	"Hi! How can I help?",
}

func (b *Bot) helpText() string {
	surpriseScope := "everyone in the workspace"
	if b.cfg.ReferenceChannel != "" {
		surpriseScope = fmt.Sprintf("every member of <#%s>", b.cfg.ReferenceChannel)
	}

	lines := []string{
		"Hello!",
		"",
		"I'm your team's Slack bot :robot_face:",
		"I can help you with the following commands:",
		"",
		" • `help` or `commands` - I'll show you this list of commands",
		" • `test account` - I'll tell you how to create a test account for our Dev/Staging environments",
		" • `pick` - I'll pick a random member from the current channel or from a subteam if you mention it (e.g. `pick @mobile` or `pick from mobile`)",
		fmt.Sprintf(" • `surprise <user>` - I'll create a private channel inviting %s but not the mentioned user. ", surpriseScope) +
			"You could use this to organize a surprise party/initiative for someone! (e.g. `surprise @john`) " +
			"*Note: Use this command in a channel the person you want to surprise is not a member of... or send me a direct message :grin:*",
	}
	return strings.Join(lines, "\n")
}

func (b *Bot) testAccountText() string {
	signup := "the signup page of our Dev or Staging environment"
	if len(b.cfg.TestAccountSignupURLs) > 0 {
		signup = strings.Join(b.cfg.TestAccountSignupURLs, " or ")
	}

	lines := []string{
		"To create a test account, please follow these steps:",
		"",
		"1. Go to " + signup,
		"2. Enter your details",
		"3. Click on the link in the email you receive",
		"",
		"You can use your work account to create multiple test accounts using aliases.",
		"For example, if your email address is `name.surname@example.com`",
		"You can add `+test1` to the end of your email address to create a new test account:",
		"`name.surname+test1@example.com`",
	}
	return strings.Join(lines, "\n")
}
