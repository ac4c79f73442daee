// Package textutil derives human-readable display titles from media file
// names for session listings.
package textutil
