package config

import "time"

// Base application details
const AppName = "ebb"
const Version = "0.3.0"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "ebb.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Editing defaults, overridable from [editor].
const DefaultTabWidth = 4
const DefaultScrollOff = 3
const DefaultHistoryLimit = 1000
const DefaultStartMode = "insert"
const SystemClipboard = true
