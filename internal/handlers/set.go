package handlers

import (
	"database/sql"

	"github.com/nikhil/zsechat/internal/auth"
	"github.com/nikhil/zsechat/internal/config"
	"github.com/nikhil/zsechat/internal/logger"
	"github.com/nikhil/zsechat/internal/middleware"
	"github.com/nikhil/zsechat/internal/models"
	"github.com/nikhil/zsechat/internal/repository"
	services "github.com/nikhil/zsechat/internal/service/auth"
	channelService "github.com/nikhil/zsechat/internal/service/channels"
	messageService "github.com/nikhil/zsechat/internal/service/messages"
	profileService "github.com/nikhil/zsechat/internal/service/users"
)

// NewSet wires the repositories and services over db and returns their handlers.
// hub receives every published message event and membership revocation.
func NewSet(db *sql.DB, hub *models.Hub, cfg config.Config, log *logger.Logger) *Set {
	users := repository.NewUserRepository(db)
	channels := repository.NewChannelRepository(db)
	messages := repository.NewMessageRepository(db)

	messageSvc := messageService.NewMessageService(messages, channels, users, hub, log)

	return &Set{
		Gate:      middleware.NewGate(auth.NewVerifier(cfg.JWTSecret), log),
		Auth:      NewAuthHandler(services.NewAuthService(users, auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL), log), log),
		Users:     NewUserHandler(profileService.NewProfileService(users, log), log),
		Channels:  NewChannelHandler(channelService.NewChannelService(channels, users, hub, log), log),
		Messages:  NewMessageHandler(messageSvc, log),
		WebSocket: NewWebSocketHandler(hub, messageSvc, cfg.Origins(), log),
	}
}
