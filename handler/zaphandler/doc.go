// Package zaphandler forwards NLog entries to a zapcore.Core, so zap
// encoders and sinks can sit behind an NLog logger. Entries arrive
// already serialized; ErrorObject values are encoded as zap objects.
package zaphandler
