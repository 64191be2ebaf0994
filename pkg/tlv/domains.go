package tlv

// loginDomains is the service-domain set carried by tag 0x511. The set
// mirrors what the remote service currently accepts; entries appear and
// disappear on the server side with no published rule, so treat this as
// externally maintained data. Disabled entries stay here commented out
// to keep the history visible.
var loginDomains = []string{
	"aq.qq.com",
	"buluo.qq.com",
	"connect.qq.com",
	"docs.qq.com",
	"game.qq.com",
	"gamecenter.qq.com",
	"haoma.qq.com",
	"id.qq.com",
	"kg.qq.com",
	"mail.qq.com",
	"mma.qq.com",
	"office.qq.com",
	"openmobile.qq.com",
	"qqweb.qq.com",
	"qun.qq.com",
	"qzone.qq.com",
	"ti.qq.com",
	"v.qq.com",
	"vip.qq.com",
	"y.qq.com",
	// "tenpay.com",      // rejected by current servers
	// "imgcache.qq.com", // rejected by current servers
}
