package category

// Vocabularies map raw codes, as they appear in the primary_* columns, to
// their Korean label and icon.

var genreVocabulary = vocabulary{
	"Thriller":                       {"스릴러", "🔪"},
	"Mystery":                        {"미스터리", "🔍"},
	"Crime Fiction":                  {"범죄소설", "⚖️"},
	"Suspense":                       {"서스펜스", "⏳"},
	"Romance":                        {"로맨스", "❤️"},
	"Fantasy":                        {"판타지", "✨"},
	"Magical Realism":                {"마술적 사실주의", "🧙‍♂️"},
	"Mythic Fiction":                 {"신화소설", "🧚‍♀️"},
	"Adventure":                      {"모험", "🗺️"},
	"Historical Fiction":             {"역사소설", "🏛️"},
	"Historical & Political Fiction": {"역사/정치소설", "🏛️"},
	"Science Fiction":                {"SF", "🚀"},
	"Philosophical Fiction":          {"철학소설", "🤔"},
	"Contemporary Fiction":           {"현대소설", "🏙️"},
	"Literary Fiction":               {"문학소설", "📖"},
	"Family_Saga":                    {"가족서사", "👨‍👩‍👧‍👦"},
	"Coming-of-Age":                  {"성장소설", "🌱"},
}

var plotVocabulary = vocabulary{
	"survival":           {"생존", "🏕️"},
	"identity_crisis":    {"정체성의 혼란", "🎭"},
	"transformation":     {"변화", "🦋"},
	"coming_of_age":      {"성장", "🌱"},
	"revenge":            {"복수", "😠"},
	"rebellion":          {"반란", "✊"},
	"family_secrets":     {"가족의 비밀", "🗝️"},
	"forgiveness":        {"용서", "🤝"},
	"curse":              {"저주", "🧙‍♂️"},
	"mystery_solving":    {"미스터리 해결", "🕵️"},
	"love_story":         {"사랑 이야기", "❤️"},
	"war":                {"전쟁", "⚔️"},
	"discovery":          {"발견", "💡"},
	"sacrifice":          {"희생", "🕊️"},
	"hero_journey":       {"영웅의 여정", "🦸"},
	"political_intrigue": {"정치적 음모", "🕴️"},
	"betrayal":           {"배신", "💔"},
	"forbidden_love":     {"금지된 사랑", "🚫❤️"},
	"quest":              {"임무", "🗺️"},
	"exploration":        {"탐험", "🧭"},
	"redemption":         {"속죄", "🙏"},
	"fish_out_of_water":  {"낯선 환경에서의 갈등", "😰"},
	"second_chance":      {"두 번째 기회", "🔄"},
	"rags_to_riches":     {"신분 상승 이야기", "📈"},
}

var characterVocabulary = vocabulary{
	"survivor":           {"생존자", "💪"},
	"ordinary_person":    {"평범한 인물", "🧑"},
	"outsider":           {"국외자", "🚶"},
	"artist":             {"예술가", "🎨"},
	"student":            {"학생", "🎒"},
	"anti_hero":          {"반(反)영웅", "😈"},
	"reluctant_hero":     {"마지못해 영웅이 된 인물", "🦸"},
	"magic_user":         {"마법사", "🧙"},
	"detective":          {"탐정", "🕵️"},
	"royalty":            {"왕족", "👑"},
	"spy":                {"스파이", "🕶️"},
	"love_interest":      {"사랑의 대상", "💕"},
	"teacher":            {"교사", "👩‍🏫"},
	"soldier":            {"군인", "🪖"},
	"leader":             {"리더", "🧑‍💼"},
	"complex_antagonist": {"입체적 악역", "🦹"},
	"hero":               {"영웅", "🦸"},
	"mentor_figure":      {"멘토", "🧑‍🏫"},
	"doctor":             {"의사", "👩‍⚕️"},
	"journalist":         {"기자", "📰"},
	"criminal":           {"범죄자", "🚓"},
	"scientist":          {"과학자", "🔬"},
	"writer":             {"작가", "✍️"},
}

var themeVocabulary = vocabulary{
	"survival_instinct":    {"생존 본능", "🧠"},
	"social_justice":       {"사회 정의", "⚖️"},
	"personal_growth":      {"개인적 성장", "🌱"},
	"truth_seeking":        {"진실 추구", "🔎"},
	"justice":              {"정의", "🧑‍⚖️"},
	"family_bonds":         {"가족 유대", "👨‍👩‍👧‍👦"},
	"power_corruption":     {"권력의 부패", "🤫"},
	"identity_search":      {"정체성 탐색", "❓"},
	"freedom":              {"자유", "🕊️"},
	"environmental_issues": {"환경 문제", "🌳"},
	"good_vs_evil":         {"선과 악", "⚔️"},
	"belonging":            {"소속감", "🫂"},
	"cultural_clash":       {"문화 충돌", "🌍"},
	"technology_impact":    {"기술의 영향", "🤖"},
	"love_story":           {"사랑 이야기", "❤️"},
	"moral_dilemma":        {"도덕적 딜레마", "🤔"},
	"sacrifice_for_others": {"타인을 위한 희생", "🕊️"},
	"tradition_vs_change":  {"전통과 변화의 갈등", "🔄"},
	"forgiveness":          {"용서", "🤝"},
	"love":                 {"사랑", "💖"},
	"legacy":               {"유산", "🏛️"},
	"responsibility":       {"책임", "👩‍⚖️"},
}

var settingVocabulary = vocabulary{
	"contemporary":         {"현대", "🌇"},
	"foreign_country":      {"외국", "✈️"},
	"rural":                {"시골", "🌾"},
	"dystopian_society":    {"디스토피아 사회", "🏭"},
	"magical_realm":        {"마법 세계", "🪄"},
	"big_city":             {"대도시", "🚕"},
	"historical_medieval":  {"중세 시대", "🏰"},
	"fantasy_world":        {"판타지 세계", "🐉"},
	"historical_victorian": {"빅토리아 시대", "🎩"},
	"historical_1920s":     {"1920년대", "🎷"},
	"historical":           {"역사적 배경", "📜"},
	"near_future":          {"가까운 미래", "🤖"},
	"historical_wwii":      {"2차 세계대전", "💣"},
	"far_future":           {"먼 미래", "🚀"},
	"small_town":           {"소도시", "🏘️"},
	"historical_1970s":     {"1970년대", "🕺"},
	"prison":               {"감옥", "🚔"},
	"school_setting":       {"학교", "🏫"},
	"workplace":            {"직장", "💼"},
	"post_apocalyptic":     {"포스트 아포칼립스", "☢️"},
	"historical_1950s":     {"1950년대", "🎙️"},
	"historical_1980s":     {"1980년대", "📼"},
	"upper_class":          {"상류층", "💎"},
	"military":             {"군대", "🎖️"},
	"other_planet":         {"다른 행성", "🪐"},
	"working_class":        {"노동자 계급", "🔧"},
	"historical_1930s":     {"1930년대", "🎞️"},
	"island":               {"섬", "🏝️"},
}

var toneVocabulary = vocabulary{
	"intense":       {"강렬한", "🔥"},
	"serious":       {"진지한", "🧐"},
	"emotional":     {"감정적인", "😭"},
	"haunting":      {"잊혀지지 않는", "👻"},
	"dark":          {"어두운", "🌑"},
	"suspenseful":   {"긴장감 있는", "😱"},
	"poetic":        {"시적인", "🖋️"},
	"dramatic":      {"극적인", "🎭"},
	"hopeful":       {"희망적인", "🌅"},
	"whimsical":     {"기발한", "🦄"},
	"action_packed": {"액션이 풍부한", "💥"},
	"humorous":      {"유머러스한", "🤣"},
	"melancholic":   {"우울한", "😔"},
	"uplifting":     {"격려하는", "🌈"},
	"fast_paced":    {"빠른 전개", "⚡"},
	"philosophical": {"철학적인", "🤔"},
	"eerie":         {"으스스한", "🕸️"},
	"mysterious":    {"신비로운", "🕵️‍♂️"},
	"gentle":        {"부드러운", "🕊️"},
	"nostalgic":     {"향수를 불러일으키는", "📻"},
	"pessimistic":   {"비관적인", "🙄"},
}
