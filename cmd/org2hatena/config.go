// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/org2hatena/internal/history"
	"github.com/pdiddy/org2hatena/pkg/types"
)

// envKeyReplacer maps "conversion.read_more" to ORG2HATENA_CONVERSION_READ_MORE.
var envKeyReplacer = strings.NewReplacer(".", "_")

func init() {
	viper.SetDefault("conversion.output_ext", types.DefaultOutputExt)
	viper.SetDefault("conversion.normalize", false)
	viper.SetDefault("conversion.read_more", false)
	viper.SetDefault("history.enabled", false)
	viper.SetDefault("history.path", history.DefaultPath)
}

// loadConfig assembles the effective configuration from defaults, the config
// file, environment variables and bound flags.
func loadConfig() types.Config {
	return types.Config{
		Conversion: types.ConversionConfig{
			OutputExt:   viper.GetString("conversion.output_ext"),
			Normalize:   viper.GetBool("conversion.normalize"),
			ReadMore:    viper.GetBool("conversion.read_more"),
			LangAliases: viper.GetStringMapString("conversion.lang_aliases"),
		},
		History: types.HistoryConfig{
			Enabled: viper.GetBool("history.enabled"),
			Path:    viper.GetString("history.path"),
		},
	}
}
