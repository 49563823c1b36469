package config

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tnze/go-mc/offline"
	"github.com/realDragonium/picocraft/mc"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// Payload turns the configured status into the snapshot sessions answer
// with. A relative favicon path is resolved against baseDir.
func (cfg StatusConfig) Payload(baseDir string) (mc.StatusPayload, error) {
	payload := mc.StatusPayload{
		VersionName:        cfg.VersionName,
		Protocol:           cfg.Protocol,
		MaxPlayers:         uint32(cfg.MaxPlayers),
		OnlinePlayers:      uint32(cfg.OnlinePlayers),
		Description:        cfg.Description,
		EnforcesSecureChat: cfg.EnforcesSecureChat,
	}

	for _, player := range cfg.Sample {
		id := player.ID
		if id == "" {
			id = offline.NameToUUID(player.Name).String()
		}
		payload.Sample = append(payload.Sample, mc.PlayerSample{
			Name: player.Name,
			ID:   id,
		})
	}

	if cfg.FaviconPath != "" {
		favicon, err := loadFavicon(cfg.FaviconPath, baseDir)
		if err != nil {
			return payload, err
		}
		payload.Favicon = favicon
	}

	return payload, nil
}

func loadFavicon(path, baseDir string) (string, error) {
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	bb, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading favicon: %w", err)
	}
	if !bytes.HasPrefix(bb, pngSignature) {
		return "", fmt.Errorf("favicon %s is not a png image", path)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(bb), nil
}
