package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// ChannelAccess grants and revokes shared-channel membership through
// Discord permission overwrites. Both operations are idempotent on the
// Discord side: setting the same overwrite twice or deleting a missing one
// does not error.
type ChannelAccess struct {
	session         *discordgo.Session
	sharedChannelID string
}

func NewChannelAccess(session *discordgo.Session, sharedChannelID string) *ChannelAccess {
	return &ChannelAccess{session: session, sharedChannelID: sharedChannelID}
}

func (c *ChannelAccess) Grant(ctx context.Context, platformUserID string) error {
	return c.session.ChannelPermissionSet(
		c.sharedChannelID,
		platformUserID,
		discordgo.PermissionOverwriteTypeMember,
		discordgo.PermissionViewChannel|discordgo.PermissionSendMessages,
		0,
		discordgo.WithContext(ctx),
	)
}

func (c *ChannelAccess) Revoke(ctx context.Context, platformUserID string) error {
	return c.session.ChannelPermissionDelete(c.sharedChannelID, platformUserID, discordgo.WithContext(ctx))
}
