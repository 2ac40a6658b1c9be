package pool

// Built-in content used when no data files are configured.

var defaultPuzzles = []Puzzle{
	{Type: "icon", Content: []string{"☁️", "9"}, Answers: []string{"cloud nine", "cloud 9"}, Hint: "Heavenly feeling.", Difficulty: 1},
	{Type: "icon", Content: []string{"🍏", "3.14"}, Answers: []string{"apple pie"}, Hint: "Dessert math.", Difficulty: 1},
	{Type: "icon", Content: []string{"🔥", "🐶"}, Answers: []string{"hot dog", "hotdog"}, Hint: "Ballpark snack.", Difficulty: 1},
	{Type: "icon", Content: []string{"☀️", "👓"}, Answers: []string{"sunglasses", "sun glasses"}, Hint: "Eye protection.", Difficulty: 1},
	{Type: "icon", Content: []string{"🏀"}, Answers: []string{"basketball"}, Hint: "Hoop dreams.", Difficulty: 1},
	{Type: "icon", Content: []string{"🧊", "🍦"}, Answers: []string{"ice cream"}, Hint: "Frozen treat.", Difficulty: 1},
	{Type: "icon", Content: []string{"🌧️", "🎀"}, Answers: []string{"rainbow"}, Hint: "Colorful arc.", Difficulty: 1},
	{Type: "icon", Content: []string{"🔥", "🪰"}, Answers: []string{"firefly"}, Hint: "Glowing bug.", Difficulty: 1},
	{Type: "icon", Content: []string{"🌙", "💡"}, Answers: []string{"moonlight"}, Hint: "Night glow.", Difficulty: 2},
	{Type: "icon", Content: []string{"🐝", "📏"}, Answers: []string{"beeline"}, Hint: "Straight there.", Difficulty: 2},
	{Type: "icon", Content: []string{"🧠", "🌩️"}, Answers: []string{"brainstorm"}, Hint: "Idea session.", Difficulty: 2},
	{Type: "text", Content: []string{"STAND", "I"}, Answers: []string{"i understand", "understand"}, Hint: "Got it.", Difficulty: 2},
	{Type: "text", Content: []string{"HEAD", "HEELS"}, Answers: []string{"head over heels"}, Hint: "Madly in love.", Difficulty: 2},
	{Type: "text", Content: []string{"ONCE", "8:00"}, Answers: []string{"once upon a time"}, Hint: "Story opener.", Difficulty: 3},
	{Type: "text", Content: []string{"R", "E", "A", "D", "I", "N", "G"}, Answers: []string{"reading between the lines"}, Hint: "Hidden meaning.", Difficulty: 3},
	{Type: "text", Content: []string{"BAN", "ANA"}, Answers: []string{"banana split"}, Hint: "Sundae classic.", Difficulty: 3},
}

var defaultWords = []Word{
	{Word: "apple", Difficulty: 1},
	{Word: "house", Difficulty: 1},
	{Word: "cat", Difficulty: 1},
	{Word: "pizza", Difficulty: 1},
	{Word: "guitar", Difficulty: 1},
	{Word: "rocket", Difficulty: 1},
	{Word: "beach", Difficulty: 1},
	{Word: "robot", Difficulty: 1},
	{Word: "castle", Difficulty: 2},
	{Word: "penguin", Difficulty: 2},
	{Word: "volcano", Difficulty: 2},
	{Word: "tornado", Difficulty: 2},
	{Word: "pirate ship", Difficulty: 2},
	{Word: "dinosaur", Difficulty: 2},
	{Word: "waterfall", Difficulty: 2},
	{Word: "telescope", Difficulty: 2},
	{Word: "lighthouse", Difficulty: 3},
	{Word: "astronaut", Difficulty: 3},
	{Word: "jellyfish", Difficulty: 3},
	{Word: "scarecrow", Difficulty: 3},
	{Word: "time machine", Difficulty: 3},
	{Word: "treasure map", Difficulty: 3},
	{Word: "ferris wheel", Difficulty: 3},
	{Word: "hot air balloon", Difficulty: 3},
}
