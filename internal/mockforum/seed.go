package mockforum

// RejectedHandle makes the search endpoint answer 400, as the real backend does
// for banned terms or an exhausted quota.
const RejectedHandle = "blocked"

// SeedChannels returns the default channel set. Some channels sit below the
// subscriber threshold so the wizard filters them out.
func SeedChannels() []Channel {
	return []Channel{
		{ID: "ch-gophers", Handle: "gophers", DisplayName: "Gophers", Subscribers: 125000},
		{ID: "ch-gopher-news", Handle: "gophernews", DisplayName: "Gopher News", Subscribers: 48200},
		{ID: "ch-gopher-kids", Handle: "gopherkids", DisplayName: "Gopher Kids", Subscribers: 950},
		{ID: "ch-rustaceans", Handle: "rustaceans", DisplayName: "Rustaceans", Subscribers: 87000},
		{ID: "ch-rust-beginners", Handle: "rustbeginners", DisplayName: "Rust Beginners", Subscribers: 9999},
		{ID: "ch-terminal", Handle: "terminal", DisplayName: "Terminal Life", Subscribers: 10000},
		{ID: "ch-tiny", Handle: "tinytalk", DisplayName: "Tiny Talk", Subscribers: 12},
	}
}
