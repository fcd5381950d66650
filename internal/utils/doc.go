// Package utils carries the configuration and logging plumbing shared by the
// CLI: ConfigurationLoader layers embedded defaults, configuration files, and
// environment variables through Viper, and LoggerFactory builds the zap
// loggers each invocation writes through.
package utils
