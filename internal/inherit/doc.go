// Package inherit resolves inherit references to analyzed files and walks
// inheritance chains across the workspace.
package inherit
