// Package sonic provides a Codec backed by github.com/bytedance/sonic.
//
// sonic only supports amd64 on linux, windows and darwin; this package
// has no exported API elsewhere. Use codec/fast for a codec that falls
// back to go-json on the remaining platforms.
package sonic
