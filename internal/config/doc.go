// Package config loads the server configuration and the demo dataset.
//
// # Sources
//
// Configuration is read in order of precedence:
//
//	1. Environment variables prefixed OPTIMIZE_ (highest priority)
//	2. A YAML file: $OPTIMIZE_CONFIG_FILE, config.yaml or configs/config.yaml
//	3. Built-in defaults (lowest priority)
//
// For example:
//
//	OPTIMIZE_SERVER_PORT=5001
//	OPTIMIZE_PATHS_DATA_DIR=/srv/demo
//	OPTIMIZE_PATHS_DATASET_FILE=/srv/demo/dataset.yaml
//	OPENAI_API_KEY=sk-...
//
// # Demo data
//
// ResolveDataPaths locates demo_data_medium.csv and demo_data_small.csv.
// Without an explicit data directory they are looked up in the project
// root above the executable, then in the working directory.
//
// Dataset holds the demo users, FAQs and static recommendation rules.
// LoadDataset reads it once at startup; tests construct their own.
package config
