package flip

// 积分套餐目录，1:1 比例（积分 = 印尼盾金额），固定不可配置
type CreditPackage struct {
	ID      string
	Name    string
	Credits int64
	Amount  int64
}

var creditPackages = map[string]CreditPackage{
	"starter": {ID: "starter", Name: "Starter", Credits: 10000, Amount: 10000},
	"basic":   {ID: "basic", Name: "Basic", Credits: 25000, Amount: 25000},
	"pro":     {ID: "pro", Name: "Pro", Credits: 50000, Amount: 50000},
	"premium": {ID: "premium", Name: "Premium", Credits: 100000, Amount: 100000},
}

// MinimumCreditsThreshold 发起对话的最低积分门槛
const MinimumCreditsThreshold = 1000

func GetPackage(packageID string) (CreditPackage, bool) {
	p, ok := creditPackages[packageID]
	return p, ok
}
