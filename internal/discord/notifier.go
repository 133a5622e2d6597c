package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var errNoOperatorChannel = errors.New("operator channel not configured")

// Notifier sends user feedback into journal channels and alerts into the
// operator channel.
type Notifier struct {
	session           *discordgo.Session
	operatorChannelID string
}

func NewNotifier(session *discordgo.Session, operatorChannelID string) *Notifier {
	return &Notifier{session: session, operatorChannelID: operatorChannelID}
}

func (n *Notifier) NotifyProgress(ctx context.Context, channelID string, totalWords, remaining int) error {
	msg := fmt.Sprintf("✍️ **%d** words written today. **%d** more to unlock the shared channel!", totalWords, remaining)
	_, err := n.session.ChannelMessageSend(channelID, msg, discordgo.WithContext(ctx))
	return err
}

func (n *Notifier) NotifyGranted(ctx context.Context, channelID string, totalWords int) error {
	msg := fmt.Sprintf("🎉 Congratulations! You've written **%d** words today and unlocked access to the shared channel!", totalWords)
	_, err := n.session.ChannelMessageSend(channelID, msg, discordgo.WithContext(ctx))
	return err
}

func (n *Notifier) NotifyAccessDelayed(ctx context.Context, channelID string, totalWords int) error {
	msg := fmt.Sprintf("🎉 You've written **%d** words today and met the requirement! Channel access is delayed — an admin has been notified.", totalWords)
	_, err := n.session.ChannelMessageSend(channelID, msg, discordgo.WithContext(ctx))
	return err
}

func (n *Notifier) AlertOperator(ctx context.Context, message string) error {
	if n.operatorChannelID == "" {
		return errNoOperatorChannel
	}
	_, err := n.session.ChannelMessageSend(n.operatorChannelID, "⚠️ "+message, discordgo.WithContext(ctx))
	return err
}
