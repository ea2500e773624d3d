package config

import (
	quiz_models "CivicQuiz/models/quiz"
	"CivicQuiz/services/quiz/npc"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// engineFile is the layout of ENGINE_CONFIG_FILE
//
//	npc:
//	  accuracy: 0.7
//	  accuracy_by_difficulty: {easy: 0.9, hard: 0.5}
//	  min_delay_ms: 1000
//	  max_delay_ms: 4000
type engineFile struct {
	NPC struct {
		Accuracy             *float64           `yaml:"accuracy"`
		AccuracyByDifficulty map[string]float64 `yaml:"accuracy_by_difficulty"`
		MinDelayMs           *int               `yaml:"min_delay_ms"`
		MaxDelayMs           *int               `yaml:"max_delay_ms"`
	} `yaml:"npc"`
}

// NPCConfig turns the env settings into the simulator config, then applies
// the YAML file on top when one is configured
func (c EngineConfig) NPCConfig() (npc.Config, error) {
	cfg := npc.Config{
		MinDelay:        c.NPCMinDelay,
		MaxDelay:        c.NPCMaxDelay,
		DefaultAccuracy: c.NPCAccuracy,
	}
	if c.ConfigFile == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(c.ConfigFile)
	if err != nil {
		return cfg, fmt.Errorf("error reading engine config: %w", err)
	}
	return applyEngineFile(cfg, data)
}

func applyEngineFile(cfg npc.Config, data []byte) (npc.Config, error) {
	var file engineFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("error parsing engine config: %w", err)
	}
	if file.NPC.Accuracy != nil {
		cfg.DefaultAccuracy = *file.NPC.Accuracy
	}
	if file.NPC.MinDelayMs != nil {
		cfg.MinDelay = time.Duration(*file.NPC.MinDelayMs) * time.Millisecond
	}
	if file.NPC.MaxDelayMs != nil {
		cfg.MaxDelay = time.Duration(*file.NPC.MaxDelayMs) * time.Millisecond
	}
	if cfg.MaxDelay <= cfg.MinDelay {
		return cfg, fmt.Errorf("invalid npc delay window [%v,%v)", cfg.MinDelay, cfg.MaxDelay)
	}
	if len(file.NPC.AccuracyByDifficulty) > 0 {
		cfg.Accuracy = make(map[quiz_models.Difficulty]float64, len(file.NPC.AccuracyByDifficulty))
		for d, acc := range file.NPC.AccuracyByDifficulty {
			switch quiz_models.Difficulty(d) {
			case quiz_models.DifficultyEasy, quiz_models.DifficultyMedium, quiz_models.DifficultyHard:
			default:
				return cfg, fmt.Errorf("unknown difficulty %q in engine config", d)
			}
			if acc < 0 || acc > 1 {
				return cfg, fmt.Errorf("accuracy %v for %s is outside [0,1]", acc, d)
			}
			cfg.Accuracy[quiz_models.Difficulty(d)] = acc
		}
	}
	return cfg, nil
}
