package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/MyelinBots/journalbot-go/internal/db/repositories/user"
)

const journalChannelPrefix = "journal-"

// Provisioner creates private journal channels on first DM and keeps the
// user's assigned channel id in the store.
type Provisioner struct {
	session         *discordgo.Session
	users           user.UserRepository
	guildID         string
	wordRequirement int
	logger          *zap.Logger
}

func NewProvisioner(session *discordgo.Session, users user.UserRepository, guildID string, wordRequirement int, logger *zap.Logger) *Provisioner {
	return &Provisioner{
		session:         session,
		users:           users,
		guildID:         guildID,
		wordRequirement: wordRequirement,
		logger:          logger,
	}
}

// IsJournalChannel reports whether a channel is someone's private journal.
func IsJournalChannel(channel *discordgo.Channel) bool {
	return channel != nil &&
		channel.Type == discordgo.ChannelTypeGuildText &&
		strings.HasPrefix(channel.Name, journalChannelPrefix)
}

// HandleDM provisions a journal channel for the DM author, or points them at
// the one they already have.
func (p *Provisioner) HandleDM(ctx context.Context, platformUserID, displayName, dmChannelID string) error {
	u, err := p.users.Upsert(ctx, platformUserID, displayName)
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", platformUserID, err)
	}

	if u.AssignedChannelID != nil {
		if ch, cerr := p.session.Channel(*u.AssignedChannelID, discordgo.WithContext(ctx)); cerr == nil && ch != nil {
			p.reply(ctx, dmChannelID, fmt.Sprintf(
				"You already have a journal channel: <#%s>\nPlease write your journal entries there!", ch.ID))
			return nil
		}
		// Channel was deleted out from under us; clear and re-provision.
		if _, err := p.users.SetAssignedChannel(ctx, platformUserID, nil, false); err != nil {
			return fmt.Errorf("clear stale channel for %s: %w", platformUserID, err)
		}
	}

	channel, err := p.createJournalChannel(ctx, platformUserID, displayName)
	if err != nil {
		p.reply(ctx, dmChannelID, "Sorry, there was an error creating your journal channel. Please contact an admin.")
		return fmt.Errorf("create journal channel for %s: %w", platformUserID, err)
	}

	won, err := p.users.SetAssignedChannel(ctx, platformUserID, &channel.ID, true)
	if err != nil {
		return fmt.Errorf("assign channel for %s: %w", platformUserID, err)
	}
	if !won {
		// Another instance provisioned concurrently; keep theirs.
		existing, gerr := p.users.GetByPlatformID(ctx, platformUserID)
		if gerr == nil && existing != nil && existing.AssignedChannelID != nil && *existing.AssignedChannelID != channel.ID {
			if _, derr := p.session.ChannelDelete(channel.ID, discordgo.WithContext(ctx)); derr != nil {
				p.logger.Warn("could not delete duplicate journal channel",
					zap.String("channel_id", channel.ID), zap.Error(derr))
			}
			if ch, cerr := p.session.Channel(*existing.AssignedChannelID, discordgo.WithContext(ctx)); cerr == nil {
				channel = ch
			}
		}
	}

	p.reply(ctx, dmChannelID, fmt.Sprintf(
		"Created your journal channel: <#%s>\nWrite at least %d words per day to access the shared channel!",
		channel.ID, p.wordRequirement))
	p.reply(ctx, channel.ID, fmt.Sprintf(
		"Welcome to your journal, <@%s>! 📔\n\nWrite at least **%d words** here each day to unlock access to the shared channel.\nAll your messages in this channel count toward your daily word count.",
		platformUserID, p.wordRequirement))
	return nil
}

func (p *Provisioner) createJournalChannel(ctx context.Context, platformUserID, displayName string) (*discordgo.Channel, error) {
	name := journalChannelPrefix + strings.ReplaceAll(strings.ToLower(displayName), " ", "-")

	// Only the user and the bot can see the channel.
	overwrites := []*discordgo.PermissionOverwrite{
		{
			ID:   p.guildID, // @everyone role shares the guild id
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
		{
			ID:    platformUserID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages,
		},
		{
			ID:    p.session.State.User.ID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages,
		},
	}

	channel, err := p.session.GuildChannelCreateComplex(p.guildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                fmt.Sprintf("Private journal for %s", displayName),
		PermissionOverwrites: overwrites,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	p.logger.Info("created journal channel",
		zap.String("channel", channel.Name),
		zap.String("platform_user_id", platformUserID))
	return channel, nil
}

func (p *Provisioner) reply(ctx context.Context, channelID, message string) {
	if _, err := p.session.ChannelMessageSend(channelID, message, discordgo.WithContext(ctx)); err != nil {
		p.logger.Warn("reply failed", zap.String("channel_id", channelID), zap.Error(err))
	}
}
