package manifest

import (
	"github.com/lixenwraith/sentry/audio"
	"github.com/lixenwraith/sentry/config"
	"github.com/lixenwraith/sentry/service"
	"go.uber.org/zap"
)

// RegisterServices registers infrastructure services with their Init args
func RegisterServices(hub *service.Hub, cfg *config.Config, logger *zap.Logger) (*audio.AudioService, error) {
	audioCfg := audio.DefaultConfig()
	audioCfg.Enabled = cfg.Audio.Enabled
	audioCfg.MasterVolume = cfg.Audio.Volume

	svc := audio.NewService(logger.Named("audio"))
	if err := hub.Register(svc, audioCfg); err != nil {
		return nil, err
	}
	return svc, nil
}
