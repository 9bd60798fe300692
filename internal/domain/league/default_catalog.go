package league

// Competition ids as assigned by API-Football.
const (
	WorldCup                int64 = 1
	UEFAChampionsLeague     int64 = 2
	UEFAEuropaLeague        int64 = 3
	EuroChampionship        int64 = 4
	UEFANationsLeague       int64 = 5
	AfricaCupOfNations      int64 = 6
	AFCAsianCup             int64 = 7
	CopaAmerica             int64 = 9
	CAFChampionsLeague      int64 = 12
	CopaLibertadores        int64 = 13
	FIFAClubWorldCup        int64 = 15
	AFCChampionsLeague      int64 = 17
	CAFConfederationCup     int64 = 20
	AFCONQualification      int64 = 36
	PremierLeague           int64 = 39
	FACup                   int64 = 45
	EFLCup                  int64 = 48
	Ligue1                  int64 = 61
	CoupeDeFrance           int64 = 66
	Bundesliga              int64 = 78
	DFBPokal                int64 = 81
	SerieA                  int64 = 135
	CoppaItalia             int64 = 137
	LaLiga                  int64 = 140
	CopaDelRey              int64 = 143
	AfricanFootballLeague   int64 = 200
	EgyptianLeague          int64 = 233
	SaudiProLeague          int64 = 307
	KingsCup                int64 = 308
	SaudiSuperCup           int64 = 309
	FrenchSuperCup          int64 = 526
	FACommunityShield       int64 = 528
	GermanSuperCup          int64 = 529
	CAFSuperCup             int64 = 533
	AfricaCupOfNationsU20   int64 = 538
	EgyptianSuperCup        int64 = 539
	ItalianSuperCup         int64 = 547
	SpanishSuperCup         int64 = 556
	EgyptCup                int64 = 714
	UEFAConferenceLeague    int64 = 848
	FIFAIntercontinentalCup int64 = 1168
)

var defaultLeagues = []League{
	{ID: WorldCup, LocalizedName: "كأس العالم", ReferenceName: "World Cup"},
	{ID: UEFAChampionsLeague, LocalizedName: "دوري أبطال أوروبا", ReferenceName: "UEFA Champions League"},
	{ID: UEFAEuropaLeague, LocalizedName: "الدوري الأوروبي", ReferenceName: "UEFA Europa League"},
	{ID: EuroChampionship, LocalizedName: "بطولة أمم أوروبا", ReferenceName: "Euro Championship"},
	{ID: UEFANationsLeague, LocalizedName: "دوري الأمم الأوروبية", ReferenceName: "UEFA Nations League"},
	{ID: CopaAmerica, LocalizedName: "كوبا أمريكا", ReferenceName: "Copa America"},
	{ID: UEFAConferenceLeague, LocalizedName: "دوري مؤتمر أمم أوروبا", ReferenceName: "UEFA Europa Conference League"},
	{ID: AFCONQualification, LocalizedName: "تصفيات كأس أمم أفريقيا", ReferenceName: "Africa Cup of Nations - Qualification"},
	{ID: AfricaCupOfNations, LocalizedName: "كأس الأمم الإفريقية", ReferenceName: "Africa Cup of Nations"},
	{ID: AfricaCupOfNationsU20, LocalizedName: "كأس الأمم الإفريقية تحت 20 سنة", ReferenceName: "Africa Cup of Nations U20"},
	{ID: CAFChampionsLeague, LocalizedName: "دوري أبطال أفريقيا", ReferenceName: "CAF Champions League"},
	{ID: CAFConfederationCup, LocalizedName: "كأس الكونفدرالية الأفريقية", ReferenceName: "CAF Confederation Cup"},
	{ID: CAFSuperCup, LocalizedName: "كأس السوبر الأفريقي", ReferenceName: "CAF Super Cup"},
	{ID: AFCChampionsLeague, LocalizedName: "دوري أبطال آسيا", ReferenceName: "AFC Champions League"},
	{ID: FIFAIntercontinentalCup, LocalizedName: "كأس القارات للأندية", ReferenceName: "FIFA Intercontinental Cup"},
	{ID: FIFAClubWorldCup, LocalizedName: "كأس العالم للأندية", ReferenceName: "FIFA Club World Cup"},
	{ID: CopaLibertadores, LocalizedName: "كأس ليبرتادوريس", ReferenceName: "Copa Libertadores"},
	{ID: AfricanFootballLeague, LocalizedName: "بطولة الدوري الإفريقي", ReferenceName: "African Football League"},
	{ID: AFCAsianCup, LocalizedName: "كأس آسيا للمنتخبات", ReferenceName: "AFC Asian Cup"},

	{ID: PremierLeague, LocalizedName: "الدوري الإنجليزي", ReferenceName: "Premier League"},
	{ID: FACup, LocalizedName: "كأس الاتحاد الإنجليزي", ReferenceName: "FA Cup"},
	{ID: EFLCup, LocalizedName: "كأس كاراباو", ReferenceName: "EFL Cup"},
	{ID: FACommunityShield, LocalizedName: "كأس السوبر الإنجليزي", ReferenceName: "FA Community Shield"},

	{ID: LaLiga, LocalizedName: "الدوري الإسباني", ReferenceName: "La Liga"},
	{ID: CopaDelRey, LocalizedName: "كأس إسبانيا", ReferenceName: "Copa del Rey"},
	{ID: SpanishSuperCup, LocalizedName: "كأس السوبر الإسباني", ReferenceName: "Spanish Super Cup"},

	{ID: SerieA, LocalizedName: "الدوري الإيطالي", ReferenceName: "Serie A"},
	{ID: CoppaItalia, LocalizedName: "كأس إيطاليا", ReferenceName: "Coppa Italia"},
	{ID: ItalianSuperCup, LocalizedName: "كأس السوبر الإيطالي", ReferenceName: "Italian Super Cup"},

	{ID: Bundesliga, LocalizedName: "الدوري الألماني", ReferenceName: "Bundesliga"},
	{ID: DFBPokal, LocalizedName: "كأس ألمانيا", ReferenceName: "DFB Pokal"},
	{ID: GermanSuperCup, LocalizedName: "كأس السوبر الألماني", ReferenceName: "German Super Cup"},

	{ID: Ligue1, LocalizedName: "الدوري الفرنسي", ReferenceName: "Ligue 1"},
	{ID: CoupeDeFrance, LocalizedName: "كأس فرنسا", ReferenceName: "Coupe de France"},
	{ID: FrenchSuperCup, LocalizedName: "كأس السوبر الفرنسي", ReferenceName: "French Super Cup"},

	{ID: SaudiProLeague, LocalizedName: "الدوري السعودي", ReferenceName: "Saudi Pro League"},
	{ID: KingsCup, LocalizedName: "كأس خادم الحرمين الشريفين", ReferenceName: "King's Cup"},
	{ID: SaudiSuperCup, LocalizedName: "كأس السوبر السعودي", ReferenceName: "Saudi Super Cup"},

	{ID: EgyptianLeague, LocalizedName: "الدوري المصري", ReferenceName: "Egyptian League"},
	{ID: EgyptCup, LocalizedName: "كأس مصر", ReferenceName: "Egypt Cup"},
	{ID: EgyptianSuperCup, LocalizedName: "كأس السوبر المصري", ReferenceName: "Egyptian Super Cup"},
}

// International, continental, domestic leagues, domestic cups, super cups.
var defaultPriority = []int64{
	WorldCup, FIFAClubWorldCup, FIFAIntercontinentalCup, EuroChampionship, UEFANationsLeague,
	CopaAmerica, AFCONQualification, AfricaCupOfNations, AFCAsianCup, AfricaCupOfNationsU20,

	UEFAChampionsLeague, CAFChampionsLeague, AFCChampionsLeague, CopaLibertadores,
	UEFAEuropaLeague, CAFConfederationCup, UEFAConferenceLeague, AfricanFootballLeague,

	PremierLeague, LaLiga, SerieA, Bundesliga, Ligue1, EgyptianLeague, SaudiProLeague,

	FACup, EFLCup, CopaDelRey, CoppaItalia, DFBPokal, CoupeDeFrance, EgyptCup, KingsCup,

	CAFSuperCup, FACommunityShield, SpanishSuperCup, ItalianSuperCup, GermanSuperCup,
	FrenchSuperCup, EgyptianSuperCup, SaudiSuperCup,
}

var defaultCatalog = MustCatalog(defaultLeagues, defaultPriority)

// DefaultCatalog is the built-in allow-list used when no override file is configured.
func DefaultCatalog() Catalog {
	return defaultCatalog
}
