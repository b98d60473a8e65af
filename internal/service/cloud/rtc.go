package cloud

import (
	"encoding/base64"
	"encoding/json"
	"time"

	qiniuauth "github.com/qiniu/go-sdk/v7/auth"
	qiniurtc "github.com/qiniu/go-sdk/v7/rtc"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/hire-cube/internal/common/utils"
)

// RTCService 签发面试间加入凭证。音视频传输本身不在本服务范围内，
// 这里只产出不透明的room token与进入链接。
type RTCService struct {
	*qiniurtc.Manager
	conf            utils.QiniuRTCConfig
	signer          *qiniuauth.Credentials
	frontendUrlHost string
	xl              *xlog.Logger
}

const (
	// DefaultRTCRoomTokenTimeout 默认的RTC加入房间用token的过期时间。
	DefaultRTCRoomTokenTimeout = 60 * time.Second
)

func NewRtcService(conf utils.Config) *RTCService {
	r := new(RTCService)
	if conf.RTC != nil {
		r.conf = *conf.RTC
	}
	r.frontendUrlHost = conf.FrontendUrlHost
	r.xl = xlog.New("rtc db")
	r.signer = &qiniuauth.Credentials{
		AccessKey: conf.QiniuKeyPair.AccessKey,
		SecretKey: []byte(conf.QiniuKeyPair.SecretKey),
	}
	client := qiniurtc.NewManager(r.signer)
	r.Manager = client
	return r
}

// GenerateRTCRoomToken 生成加入面试间的room token。
func (r *RTCService) GenerateRTCRoomToken(interviewID, userID, permission string) string {
	roomTimeOut := DefaultRTCRoomTokenTimeout
	if r.conf.RoomTokenExpireSecond > 0 {
		roomTimeOut = time.Duration(r.conf.RoomTokenExpireSecond) * time.Second
	}
	roomAccess := qiniurtc.RoomAccess{
		AppID:      r.conf.AppID,
		RoomName:   interviewID,
		UserID:     userID,
		ExpireAt:   time.Now().Add(roomTimeOut).Unix(),
		Permission: permission,
	}
	token, _ := r.GetRoomToken(roomAccess)
	return token
}

// MeetingURL 拼接邮件里发给参与者的进入链接，携带base64的身份参数。
func (r *RTCService) MeetingURL(interviewID, userID string, role string) string {
	payload, _ := json.Marshal(map[string]string{
		"userId": userID,
		"role":   role,
	})
	return r.frontendUrlHost + "/meeting-entrance/" + interviewID +
		"?interviewToken=" + base64.StdEncoding.EncodeToString(payload)
}
