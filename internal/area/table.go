package area

// AllRegionsID помечает профили, работающие во всех регионах.
const (
	AllRegionsID   = "all"
	AllRegionsName = "全国"
)

type Area struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type Group struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
}

type Table struct {
	Areas  []Area  `yaml:"areas"`
	Groups []Group `yaml:"groups"`
}

// DefaultTable возвращает справочник префектур и регионов Японии.
func DefaultTable() Table {
	return Table{
		Areas: []Area{
			{ID: "hokkaido", Name: "北海道"},
			{ID: "aomori", Name: "青森県"},
			{ID: "iwate", Name: "岩手県"},
			{ID: "miyagi", Name: "宮城県"},
			{ID: "akita", Name: "秋田県"},
			{ID: "yamagata", Name: "山形県"},
			{ID: "fukushima", Name: "福島県"},
			{ID: "ibaraki", Name: "茨城県"},
			{ID: "tochigi", Name: "栃木県"},
			{ID: "gunma", Name: "群馬県"},
			{ID: "saitama", Name: "埼玉県"},
			{ID: "chiba", Name: "千葉県"},
			{ID: "tokyo", Name: "東京都"},
			{ID: "kanagawa", Name: "神奈川県"},
			{ID: "niigata", Name: "新潟県"},
			{ID: "nagano", Name: "長野県"},
			{ID: "yamanashi", Name: "山梨県"},
			{ID: "shizuoka", Name: "静岡県"},
			{ID: "aichi", Name: "愛知県"},
			{ID: "gifu", Name: "岐阜県"},
			{ID: "mie", Name: "三重県"},
			{ID: "ishikawa", Name: "石川県"},
			{ID: "toyama", Name: "富山県"},
			{ID: "fukui", Name: "福井県"},
			{ID: "shiga", Name: "滋賀県"},
			{ID: "kyoto", Name: "京都府"},
			{ID: "osaka", Name: "大阪府"},
			{ID: "hyogo", Name: "兵庫県"},
			{ID: "nara", Name: "奈良県"},
			{ID: "wakayama", Name: "和歌山県"},
			{ID: "tottori", Name: "鳥取県"},
			{ID: "shimane", Name: "島根県"},
			{ID: "okayama", Name: "岡山県"},
			{ID: "hiroshima", Name: "広島県"},
			{ID: "yamaguchi", Name: "山口県"},
			{ID: "tokushima", Name: "徳島県"},
			{ID: "kagawa", Name: "香川県"},
			{ID: "ehime", Name: "愛媛県"},
			{ID: "kochi", Name: "高知県"},
			{ID: "fukuoka", Name: "福岡県"},
			{ID: "saga", Name: "佐賀県"},
			{ID: "nagasaki", Name: "長崎県"},
			{ID: "kumamoto", Name: "熊本県"},
			{ID: "oita", Name: "大分県"},
			{ID: "miyazaki", Name: "宮崎県"},
			{ID: "kagoshima", Name: "鹿児島県"},
			{ID: "okinawa", Name: "沖縄県"},
		},
		Groups: []Group{
			{ID: "hokkaido-tohoku", Name: "北海道・東北", Members: []string{"hokkaido", "aomori", "iwate", "miyagi", "akita", "yamagata", "fukushima"}},
			{ID: "kanto", Name: "関東", Members: []string{"ibaraki", "tochigi", "gunma", "saitama", "chiba", "tokyo", "kanagawa"}},
			{ID: "koshinetsu", Name: "甲信越", Members: []string{"niigata", "nagano", "yamanashi"}},
			{ID: "tokai", Name: "東海", Members: []string{"shizuoka", "aichi", "gifu", "mie"}},
			{ID: "hokuriku", Name: "北陸", Members: []string{"ishikawa", "toyama", "fukui"}},
			{ID: "kansai", Name: "関西", Members: []string{"shiga", "kyoto", "osaka", "hyogo", "nara", "wakayama"}},
			{ID: "chugoku-shikoku", Name: "中国・四国", Members: []string{"tottori", "shimane", "okayama", "hiroshima", "yamaguchi", "tokushima", "kagawa", "ehime", "kochi"}},
			{ID: "kyushu-okinawa", Name: "九州・沖縄", Members: []string{"fukuoka", "saga", "nagasaki", "kumamoto", "oita", "miyazaki", "kagoshima", "okinawa"}},
		},
	}
}
