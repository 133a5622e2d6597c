package context_manager

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

type contextKey string

const (
	userKey        contextKey = "platform_user_id"
	channelKey     contextKey = "channel_id"
	interactionKey contextKey = "interaction"
)

func SetUserContext(ctx context.Context, platformUserID string) context.Context {
	return context.WithValue(ctx, userKey, platformUserID)
}

func GetUserContext(ctx context.Context) string {
	if v, ok := ctx.Value(userKey).(string); ok {
		return v
	}
	return ""
}

func SetChannelContext(ctx context.Context, channelID string) context.Context {
	return context.WithValue(ctx, channelKey, channelID)
}

func GetChannelContext(ctx context.Context) string {
	if v, ok := ctx.Value(channelKey).(string); ok {
		return v
	}
	return ""
}

func SetInteractionContext(ctx context.Context, interaction *discordgo.InteractionCreate) context.Context {
	return context.WithValue(ctx, interactionKey, interaction)
}

func GetInteractionContext(ctx context.Context) *discordgo.InteractionCreate {
	if v, ok := ctx.Value(interactionKey).(*discordgo.InteractionCreate); ok {
		return v
	}
	return nil
}
