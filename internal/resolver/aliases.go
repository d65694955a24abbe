package resolver

import "github.com/stefanautomateed/sportsdata/internal/domain/sport"

// Alias tables map lowercased spellings, short names, city names and
// historical aliases onto one canonical display name per team. They are not
// exhaustive rosters; the fuzzy fallback covers teams missing here.

var soccerAliases = map[string]string{
	"manchester united":   "Manchester United",
	"man united":          "Manchester United",
	"man utd":             "Manchester United",
	"mufc":                "Manchester United",
	"manchester city":     "Manchester City",
	"man city":            "Manchester City",
	"mcfc":                "Manchester City",
	"liverpool":           "Liverpool",
	"liverpool fc":        "Liverpool",
	"lfc":                 "Liverpool",
	"arsenal":             "Arsenal",
	"gunners":             "Arsenal",
	"chelsea":             "Chelsea",
	"cfc":                 "Chelsea",
	"tottenham":           "Tottenham Hotspur",
	"spurs":               "Tottenham Hotspur",
	"tottenham hotspur":   "Tottenham Hotspur",
	"newcastle":           "Newcastle United",
	"newcastle united":    "Newcastle United",
	"real madrid":         "Real Madrid",
	"madrid":              "Real Madrid",
	"barcelona":           "Barcelona",
	"barca":               "Barcelona",
	"fc barcelona":        "Barcelona",
	"atletico madrid":     "Atletico Madrid",
	"atletico":            "Atletico Madrid",
	"bayern":              "Bayern Munich",
	"bayern munich":       "Bayern Munich",
	"bayern munchen":      "Bayern Munich",
	"borussia dortmund":   "Borussia Dortmund",
	"dortmund":            "Borussia Dortmund",
	"bvb":                 "Borussia Dortmund",
	"psg":                 "Paris Saint-Germain",
	"paris sg":            "Paris Saint-Germain",
	"paris saint-germain": "Paris Saint-Germain",
	"juventus":            "Juventus",
	"juve":                "Juventus",
	"inter":               "Inter Milan",
	"inter milan":         "Inter Milan",
	"internazionale":      "Inter Milan",
	"ac milan":            "AC Milan",
	"milan":               "AC Milan",
	"napoli":              "Napoli",
	"ssc napoli":          "Napoli",
}

var basketballAliases = map[string]string{
	"lakers":                "Los Angeles Lakers",
	"la lakers":             "Los Angeles Lakers",
	"los angeles lakers":    "Los Angeles Lakers",
	"clippers":              "Los Angeles Clippers",
	"la clippers":           "Los Angeles Clippers",
	"celtics":               "Boston Celtics",
	"boston":                "Boston Celtics",
	"boston celtics":        "Boston Celtics",
	"warriors":              "Golden State Warriors",
	"golden state":          "Golden State Warriors",
	"gsw":                   "Golden State Warriors",
	"nets":                  "Brooklyn Nets",
	"brooklyn":              "Brooklyn Nets",
	"knicks":                "New York Knicks",
	"ny knicks":             "New York Knicks",
	"bulls":                 "Chicago Bulls",
	"chicago bulls":         "Chicago Bulls",
	"heat":                  "Miami Heat",
	"miami heat":            "Miami Heat",
	"bucks":                 "Milwaukee Bucks",
	"milwaukee":             "Milwaukee Bucks",
	"nuggets":               "Denver Nuggets",
	"denver":                "Denver Nuggets",
	"suns":                  "Phoenix Suns",
	"phoenix":               "Phoenix Suns",
	"mavericks":             "Dallas Mavericks",
	"mavs":                  "Dallas Mavericks",
	"sixers":                "Philadelphia 76ers",
	"76ers":                 "Philadelphia 76ers",
	"philadelphia 76ers":    "Philadelphia 76ers",
	"spurs":                 "San Antonio Spurs",
	"san antonio":           "San Antonio Spurs",
	"thunder":               "Oklahoma City Thunder",
	"okc":                   "Oklahoma City Thunder",
	"oklahoma city thunder": "Oklahoma City Thunder",
	"cavs":                  "Cleveland Cavaliers",
	"cavaliers":             "Cleveland Cavaliers",
	"raptors":               "Toronto Raptors",
	"toronto":               "Toronto Raptors",
}

var hockeyAliases = map[string]string{
	"rangers":             "New York Rangers",
	"ny rangers":          "New York Rangers",
	"bruins":              "Boston Bruins",
	"boston bruins":       "Boston Bruins",
	"maple leafs":         "Toronto Maple Leafs",
	"leafs":               "Toronto Maple Leafs",
	"toronto maple leafs": "Toronto Maple Leafs",
	"canadiens":           "Montreal Canadiens",
	"habs":                "Montreal Canadiens",
	"montreal":            "Montreal Canadiens",
	"oilers":              "Edmonton Oilers",
	"edmonton":            "Edmonton Oilers",
	"avalanche":           "Colorado Avalanche",
	"avs":                 "Colorado Avalanche",
	"colorado avalanche":  "Colorado Avalanche",
	"lightning":           "Tampa Bay Lightning",
	"bolts":               "Tampa Bay Lightning",
	"tampa bay":           "Tampa Bay Lightning",
	"penguins":            "Pittsburgh Penguins",
	"pens":                "Pittsburgh Penguins",
	"blackhawks":          "Chicago Blackhawks",
	"hawks":               "Chicago Blackhawks",
	"red wings":           "Detroit Red Wings",
	"detroit":             "Detroit Red Wings",
	"golden knights":      "Vegas Golden Knights",
	"vegas":               "Vegas Golden Knights",
	"panthers":            "Florida Panthers",
	"florida panthers":    "Florida Panthers",
	"kings":               "Los Angeles Kings",
	"la kings":            "Los Angeles Kings",
}

var footballAliases = map[string]string{
	"chiefs":              "Kansas City Chiefs",
	"kc chiefs":           "Kansas City Chiefs",
	"kansas city":         "Kansas City Chiefs",
	"eagles":              "Philadelphia Eagles",
	"philly eagles":       "Philadelphia Eagles",
	"philadelphia eagles": "Philadelphia Eagles",
	"cowboys":             "Dallas Cowboys",
	"dallas":              "Dallas Cowboys",
	"49ers":               "San Francisco 49ers",
	"niners":              "San Francisco 49ers",
	"san francisco 49ers": "San Francisco 49ers",
	"packers":             "Green Bay Packers",
	"green bay":           "Green Bay Packers",
	"bills":               "Buffalo Bills",
	"buffalo":             "Buffalo Bills",
	"ravens":              "Baltimore Ravens",
	"baltimore":           "Baltimore Ravens",
	"bengals":             "Cincinnati Bengals",
	"cincinnati":          "Cincinnati Bengals",
	"lions":               "Detroit Lions",
	"detroit lions":       "Detroit Lions",
	"dolphins":            "Miami Dolphins",
	"miami dolphins":      "Miami Dolphins",
	"jets":                "New York Jets",
	"ny jets":             "New York Jets",
	"giants":              "New York Giants",
	"ny giants":           "New York Giants",
	"patriots":            "New England Patriots",
	"pats":                "New England Patriots",
	"new england":         "New England Patriots",
	"steelers":            "Pittsburgh Steelers",
	"pittsburgh":          "Pittsburgh Steelers",
	"rams":                "Los Angeles Rams",
	"la rams":             "Los Angeles Rams",
	"texans":              "Houston Texans",
	"houston":             "Houston Texans",
}

func aliasTable(s sport.Sport) map[string]string {
	switch s {
	case sport.Soccer:
		return soccerAliases
	case sport.Basketball:
		return basketballAliases
	case sport.Hockey:
		return hockeyAliases
	case sport.Football:
		return footballAliases
	default:
		return nil
	}
}
