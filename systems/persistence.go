package systems

import (
	"encoding/json"
	"log"

	cfg "github.com/automoto/timeslip/config"
	"github.com/quasilyte/gdata"
)

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	ShowShapes bool   `json:"showShapes"`
	ShowHUD    bool   `json:"showHud"`
	LastLevel  string `json:"lastLevel"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// lastLevel is remembered so saving the debug toggles keeps it.
var lastLevel string

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "timeslip",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadSettings loads settings from disk
func LoadSettings() (*SavedSettings, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("settings")
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		// No saved settings yet, use defaults
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}

	return &settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}

	if err := gdataManager.SaveItem("settings", data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}

// SaveCurrentSettings saves the live debug toggles and the last level played.
func SaveCurrentSettings() {
	_ = SaveSettings(&SavedSettings{
		ShowShapes: cfg.Debug.ShowShapes,
		ShowHUD:    cfg.Debug.ShowHUD,
		LastLevel:  lastLevel,
	})
}

// RememberLevel records name as the last level played.
func RememberLevel(name string) {
	if name == lastLevel {
		return
	}
	lastLevel = name
	SaveCurrentSettings()
}

// ApplySavedSettings applies loaded settings to the debug configuration and
// returns the level to resume, "" when none was saved.
func ApplySavedSettings(saved *SavedSettings) string {
	if saved == nil {
		return ""
	}
	cfg.Debug.ShowShapes = saved.ShowShapes
	cfg.Debug.ShowHUD = saved.ShowHUD
	lastLevel = saved.LastLevel
	return saved.LastLevel
}
