// Package config manages user-level settings stored at ~/.pbhook/config.yaml.
// Every key can also be supplied through a PBHOOK_ prefixed environment
// variable, which is how the firmware build passes its project directory in.
package config
