// Package cli provides the interactive MoneyTalk command-line client.
//
// It wires configuration, the local session store, the API client, application
// services, and an interactive REPL. Typical flow: restore the saved session
// (or prompt for login), load the chat history, and execute user commands.
//
// Key features:
//   - Login / Logout with a locally persisted session
//   - Chat with the assistant: send text and images, browse history
//   - Review, edit, confirm or cancel pending expense operations
//   - Page through search results, browse the expense datasheet
//   - Statistics summary and chart views
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
