// Package application provides a minimal application context: an
// identified unit with a lifecycle, an environment, an optional embedded web
// server and explicit event subscriptions.
//
// A Context publishes WebServerInitializedEvent and ReadyEvent while
// starting and ClosedEvent once closed. Events raised by a child context
// are delivered to the child's listeners first and then to every
// ancestor's, so listeners that care about one context compare ContextID.
package application
