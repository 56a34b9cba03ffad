// Package game implements the blackjack round engine.
//
// The main type is Game, a round controller that owns a Player, a Dealer and
// a deck.Shoe and walks each round through betting, the deal, the optional
// insurance offer, the player's action loop, dealer play, settlement and
// teardown.
//
// # Basic Usage
//
// Anything that implements UI can drive a game: the console and TUI front
// ends, or a bot for simulations.
//
//	g := game.NewGame(ui, game.WithDecks(3), game.WithLogger(logger))
//	if err := g.Run(ctx); err != nil {
//	    // I/O failure from the UI, or ctx cancelled
//	}
//
// PlayRound plays a single round and returns a RoundResult, which is what
// the simulator uses:
//
//	g.StartSession()
//	res, err := g.PlayRound(ctx)
//
// # Deterministic Testing
//
// Pass a seeded RNG or a stacked shoe so the deal is known in advance:
//
//	shoe := deck.NewStackedShoe(1, randutil.New(1), deck.MustParseCards("Th 7c 9s 6d 5h")...)
//	g := game.NewGame(ui, game.WithShoe(shoe))
//
// # Architecture
//
// Data only flows downward. Game pulls cards from the shoe into Hands owned
// by the actors and pushes display and prompt requests to the UI. Every
// UI call receives a TableView snapshot, never the live hands. Game also
// publishes typed events on an EventBus for history and statistics.
package game
