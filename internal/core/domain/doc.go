// Package domain contains the core business entities for PersonaApply:
// chunks, documents, user profiles, and content generation types.
// It has no dependencies on infrastructure or adapters.
package domain
