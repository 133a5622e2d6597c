package bot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MyelinBots/journalbot-go/config"
	"github.com/MyelinBots/journalbot-go/internal/db"
	"github.com/MyelinBots/journalbot-go/internal/db/repositories/daily_stat"
	"github.com/MyelinBots/journalbot-go/internal/db/repositories/journal_entry"
	"github.com/MyelinBots/journalbot-go/internal/db/repositories/user"
	"github.com/MyelinBots/journalbot-go/internal/discord"
	"github.com/MyelinBots/journalbot-go/internal/healthcheck"
	"github.com/MyelinBots/journalbot-go/internal/logging"
	"github.com/MyelinBots/journalbot-go/internal/services/commands"
	"github.com/MyelinBots/journalbot-go/internal/services/context_manager"
	"github.com/MyelinBots/journalbot-go/internal/services/insight"
	"github.com/MyelinBots/journalbot-go/internal/services/journal"
	"github.com/MyelinBots/journalbot-go/internal/services/reset"
)

const insightCommandName = "gemini"

func StartBot() error {
	cfg := config.LoadConfigOrPanic()

	logger, err := logging.NewLogger(cfg.AppConfig.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	healthcheck.StartHealthcheck(ctx, cfg.AppConfig)

	if err := db.RunMigrations("file://migrations", cfg.DBConfig); err != nil {
		return err
	}
	database, err := db.NewDatabase(cfg.DBConfig)
	if err != nil {
		return err
	}

	users := user.NewUserRepository(database)
	entries := journal_entry.NewJournalEntryRepository(database)
	stats := daily_stat.NewDailyStatRepository(database)

	session, err := discordgo.New("Bot " + cfg.DiscordConfig.Token)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	location := cfg.Location()
	channelAccess := discord.NewChannelAccess(session, cfg.DiscordConfig.SharedChannelID)
	notifier := discord.NewNotifier(session, cfg.DiscordConfig.OperatorChannelID)
	controller := journal.NewController(
		users, entries, stats,
		channelAccess, notifier,
		cfg.JournalConfig.DailyWordRequirement,
		location, logger,
	)
	resetJob := reset.NewDailyReset(stats, controller, location, logger)
	insights := insight.NewInsight(entries, cfg.InsightConfig, location)
	provisioner := discord.NewProvisioner(session, users, cfg.DiscordConfig.GuildID, cfg.JournalConfig.DailyWordRequirement, logger)

	commandController := commands.NewCommandController()
	commandController.AddCommand(insightCommandName, insightCommandHandler(session, controller, insights, cfg, logger))

	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		logger.Info("connected to discord", zap.String("user", r.User.Username))
		_, cerr := s.ApplicationCommandCreate(r.User.ID, cfg.DiscordConfig.GuildID, &discordgo.ApplicationCommand{
			Name:        insightCommandName,
			Description: "Run a prompt over all of today's journals",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "prompt",
					Description: "What to ask about today's journals",
					Required:    true,
				},
			},
		})
		if cerr != nil {
			logger.Error("command registration failed", zap.Error(cerr))
		}
	})
	session.AddHandler(messageHandler(controller, provisioner, logger))
	session.AddHandler(interactionHandler(commandController, logger))

	if err := session.Open(); err != nil {
		return fmt.Errorf("open discord connection: %w", err)
	}

	if err := resetJob.Start(ctx); err != nil {
		session.Close()
		return fmt.Errorf("start daily reset: %w", err)
	}

	logger.Info("journalbot running",
		zap.String("guild_id", cfg.DiscordConfig.GuildID),
		zap.Int("daily_word_requirement", cfg.JournalConfig.DailyWordRequirement),
		zap.String("timezone", cfg.JournalConfig.Timezone))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		resetJob.Stop()
		return session.Close()
	})
	return g.Wait()
}

func messageHandler(controller journal.Controller, provisioner *discord.Provisioner, logger *zap.Logger) func(*discordgo.Session, *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot {
			return
		}

		ctx := context_manager.SetUserContext(context.Background(), m.Author.ID)
		ctx = context_manager.SetChannelContext(ctx, m.ChannelID)

		channel, err := s.State.Channel(m.ChannelID)
		if err != nil {
			channel, err = s.Channel(m.ChannelID)
			if err != nil {
				logger.Warn("channel lookup failed", zap.String("channel_id", m.ChannelID), zap.Error(err))
				return
			}
		}

		// DMs provision a journal channel.
		if channel.Type == discordgo.ChannelTypeDM {
			if err := provisioner.HandleDM(ctx, m.Author.ID, m.Author.Username, m.ChannelID); err != nil {
				logger.Error("dm handling failed", zap.String("platform_user_id", m.Author.ID), zap.Error(err))
			}
			return
		}

		if !discord.IsJournalChannel(channel) {
			return
		}

		err = controller.HandleEntry(ctx, journal.Entry{
			PlatformUserID:    m.Author.ID,
			DisplayName:       m.Author.Username,
			ChannelID:         m.ChannelID,
			PlatformMessageID: m.ID,
			Content:           m.Content,
			CreatedAt:         m.Timestamp,
		})
		if err != nil {
			// Contained per entry; the next message gets a fresh attempt.
			logger.Error("entry handling failed",
				zap.String("platform_user_id", m.Author.ID),
				zap.String("platform_message_id", m.ID),
				zap.Error(err))
		}
	}
}

func interactionHandler(controller commands.CommandController, logger *zap.Logger) func(*discordgo.Session, *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		data := i.ApplicationCommandData()

		args := ""
		if len(data.Options) > 0 {
			args = data.Options[0].StringValue()
		}

		ctx := context_manager.SetUserContext(context.Background(), interactionUserID(i))
		ctx = context_manager.SetInteractionContext(ctx, i)

		if err := controller.HandleCommand(ctx, data.Name, args); err != nil {
			logger.Error("command failed", zap.String("command", data.Name), zap.Error(err))
		}
	}
}

func insightCommandHandler(session *discordgo.Session, controller journal.Controller, insights insight.Insight, cfg config.Config, logger *zap.Logger) commands.Handler {
	return func(ctx context.Context, prompt string) error {
		i := context_manager.GetInteractionContext(ctx)
		if i == nil {
			return nil
		}

		if i.ChannelID != cfg.DiscordConfig.SharedChannelID {
			return respondEphemeral(session, i, fmt.Sprintf(
				"The /%s command can only be used in the shared journaling channel!", insightCommandName))
		}

		hasAccess, err := controller.HasAccessToday(ctx, context_manager.GetUserContext(ctx))
		if err != nil {
			return err
		}
		if !hasAccess {
			return respondEphemeral(session, i, fmt.Sprintf(
				"You need to write %d words in your journal today to use this command!",
				cfg.JournalConfig.DailyWordRequirement))
		}

		// The model call can take a while; defer the response.
		if err := session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		}); err != nil {
			return err
		}

		text, err := insights.Summarize(ctx, controller.Today(), prompt)
		if err != nil {
			if errors.Is(err, insight.ErrNoEntries) {
				return followUp(session, i, "No journal entries found for today!")
			}
			if ferr := followUp(session, i, "Sorry, there was an error processing your request."); ferr != nil {
				logger.Warn("error follow-up failed", zap.Error(ferr))
			}
			return err
		}

		for _, chunk := range chunkMessage(text, 2000) {
			if err := followUp(session, i, chunk); err != nil {
				return err
			}
		}
		return nil
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func respondEphemeral(session *discordgo.Session, i *discordgo.InteractionCreate, message string) error {
	return session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func followUp(session *discordgo.Session, i *discordgo.InteractionCreate, message string) error {
	_, err := session.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{Content: message})
	return err
}

// chunkMessage splits text into rune-safe pieces under Discord's message
// size limit.
func chunkMessage(text string, size int) []string {
	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}
	var chunks []string
	for len(runes) > 0 {
		n := size
		if n > len(runes) {
			n = len(runes)
		}
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}
	return chunks
}
